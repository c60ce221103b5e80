package parser

import "fmt"

// SyntaxError means no consistent parse of the signature exists: the
// message always quotes the entire original input, there is no reliable
// smaller locus to blame.
type SyntaxError struct {
	Input string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Failed to parse type [%s]", e.Input)
}

// UnregisteredTypeError means a name was consumed correctly in a type-name
// position but isn't registered. The message quotes exactly the matched
// name, not the surrounding construct.
type UnregisteredTypeError struct {
	Name string
}

func (e *UnregisteredTypeError) Error() string {
	return fmt.Sprintf("Failed to parse type [%s]. Type not registered.", e.Name)
}
