// Package authz decides whether the caller of a service operation may run it.
//
// Every usecase operation names itself as an Operation{Resource, Action}. The Policy table
// maps each operation to the Permission it needs ("post:write", "language:read", ...) and
// the Gate checks that permission against the grants of the Principal found in the context.
// No store access happens before the gate has answered.
package authz
