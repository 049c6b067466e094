// admin-keygen mints an admin access token for bootstrap, before any
// admin account exists to log in with.
package main

import (
	"flag"
	"fmt"
	"os"

	"campuseventhub-backend/entity"
	"campuseventhub-backend/jwt"
	"campuseventhub-backend/log"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func main() {
	key := flag.String("key", "", "Signing key, must match the server's JWT_KEY")
	user := flag.String("user", "", "Hex object id of the admin user (optional, generated when empty)")
	name := flag.String("name", "admin", "Display name embedded in the token")
	flag.Parse()

	log.EnsureLogger()

	if *key == "" {
		fmt.Println("--key is required")
		os.Exit(1)
	}

	id := primitive.NewObjectID()
	if *user != "" {
		var err error
		id, err = primitive.ObjectIDFromHex(*user)
		if err != nil {
			fmt.Println("--user invalid object id")
			os.Exit(1)
		}
	}

	ss, err := jwt.NewAccessToken(&entity.User{
		ID:   id,
		Name: *name,
		Role: entity.RoleAdmin,
	}, []byte(*key))
	if err != nil {
		os.Exit(1)
	}

	fmt.Println("User id:", id.Hex())
	fmt.Println("Token successfully generated:", ss)
}
