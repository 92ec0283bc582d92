// See errors.go for the module's error taxonomy. Package transaction
// returns InvalidTransactionError for a rejected app id; the transport,
// rpc and subscription packages return their own error values (wrapped
// with fmt.Errorf or, for JSON-RPC errors, rpc.TransportRPCError) and do
// not construct these types.
package avail
