package storage

// Address is a fully resolved storage key, ready to pass to
// state_getStorage/state_getStorageAt.
type Address []byte

// prefix is the first 32 bytes of every key belonging to a given
// pallet/item: Twox128(palletName) || Twox128(itemName).
func prefix(palletName, itemName string) []byte {
	out := make([]byte, 0, 32)
	out = append(out, Twox128([]byte(palletName))...)
	out = append(out, Twox128([]byte(itemName))...)
	return out
}

// ValueAddress resolves a plain (non-map) storage item's key.
func ValueAddress(palletName, itemName string) Address {
	return Address(prefix(palletName, itemName))
}

// MapAddress resolves a StorageMap entry's key: the item prefix
// followed by key hashed with the map's declared Hasher.
func MapAddress(palletName, itemName string, hasher Hasher, key []byte) Address {
	out := prefix(palletName, itemName)
	out = append(out, hasher(key)...)
	return Address(out)
}

// MapPrefix resolves the common prefix of every entry in a StorageMap,
// the starting point for a paged key iteration over the whole map.
func MapPrefix(palletName, itemName string) Address {
	return ValueAddress(palletName, itemName)
}

// DoubleMapAddress resolves a StorageDoubleMap entry's key: the item
// prefix followed by each key part hashed with its own declared Hasher,
// in declaration order.
func DoubleMapAddress(palletName, itemName string, hasher1 Hasher, key1 []byte, hasher2 Hasher, key2 []byte) Address {
	out := prefix(palletName, itemName)
	out = append(out, hasher1(key1)...)
	out = append(out, hasher2(key2)...)
	return Address(out)
}

// DoubleMapPrefix resolves the common prefix of every entry sharing
// key1 in a StorageDoubleMap, for iterating only that key's sub-map.
func DoubleMapPrefix(palletName, itemName string, hasher1 Hasher, key1 []byte) Address {
	out := prefix(palletName, itemName)
	out = append(out, hasher1(key1)...)
	return Address(out)
}
