// Package printing contains the Printing bounded context.
// It describes the templates used to print check requests and memoranda.
package printing
