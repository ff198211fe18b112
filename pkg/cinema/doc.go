// Package cinema defines the records kept by cinedb: movies and their
// reviews, cineplexes and their cinemas, and showings.
//
// Every record implements serial.Record and is registered in [Registry]
// under its type tag, so stored strings can be decoded by tag as well as by
// Go type.
package cinema
