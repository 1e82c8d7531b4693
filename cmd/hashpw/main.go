/*
main.go - bcrypt hash generator for the admin password

PURPOSE:
  The server never stores a plain admin password; it is configured with a
  bcrypt hash via ADMIN_PASSWORD_HASH. This tool generates that hash.

USAGE:
  go run ./cmd/hashpw "your-password"
*/
package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

func main() {
	if len(os.Args) < 2 || os.Args[1] == "" {
		fmt.Fprintln(os.Stderr, `Usage: hashpw "your-password"`)
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(os.Args[1]), bcryptCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	fmt.Println(string(hash))
}
