// Package cli implements the interactive TaskKeeper command line client.
//
// The REPL reads one command per line. Commands that take a task id accept
// the full id as printed by "list".
//
//	Not logged in:
//	  register, login, help, exit | quit
//
//	Logged in:
//	  add <text>, (l)ist, show <id>, done <id>, undo <id>,
//	  edit <id> <text>, rm <id>, me, logout, help, exit | quit
package cli
