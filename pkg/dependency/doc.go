// Package dependency decides where each resolved artifact goes in the
// assembled web application.
//
// The artifact type string maps onto a closed set of kinds through KindOf,
// the single place a new type needs to be taught. Classify then filters by
// scope, disambiguates colliding file names with the group id, and returns
// one Decision per artifact in input order.
package dependency
