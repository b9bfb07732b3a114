package container

import (
	"fmt"
	"reflect"
)

func typeName(v any) string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%T", v)
}

func typeNameOf[T any]() string {
	return reflect.TypeFor[T]().String()
}
