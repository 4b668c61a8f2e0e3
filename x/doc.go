/*
Package x contains some standard extensions

Extensions implement common functionality (ledger custody, signature
verification) and can be combined together to construct an application.

Each extension ideally is either self-sufficient or makes its
dependencies explicit through interfaces that the application wires
together.
*/
package x
