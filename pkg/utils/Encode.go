package utils

import "github.com/fxamacker/cbor/v2"


//=========================================== Encode/Decode Utils


/*
	encode a struct of type T to a byte array (cbor)
*/

func EncodeStructToBytes [T any](data T) ([]byte, error) {
	encoded, err := cbor.Marshal(data)
	if err != nil { return nil, err }

	return encoded, nil
}

/*
	decode a byte array to a struct of type T
*/

func DecodeBytesToStruct [T any](encoded []byte) (*T, error) {
	data := new(T)
	err := cbor.Unmarshal(encoded, data)
	if err != nil { return nil, err }

	return data, nil
}
