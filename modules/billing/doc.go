// Package billing is the mountable HTTP surface of the membership toolkit:
// the processor webhook endpoint, the checkout form handler, the admin
// payment-edit endpoint, and the member account summary.
//
// Every service is optional; routes are mounted only for the services the
// host application provides. Authentication is delegated to the host
// through the UserResolver.
package billing
