package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/d60-Lab/blog-platform/config"
	"github.com/d60-Lab/blog-platform/internal/model"
	"github.com/d60-Lab/blog-platform/pkg/database"
)

// createuser inserts an account directly into the database. Tokens are issued
// by the identity provider, this only provisions the row it refers to.
func main() {
	email := flag.String("email", "", "account email (required)")
	name := flag.String("name", "", "display name")
	role := flag.String("role", model.RoleAuthor, "USER, AUTHOR or ADMIN")
	password := flag.String("password", "", "login password (required)")
	flag.Parse()

	if *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}
	r := strings.ToUpper(*role)
	if r != model.RoleUser && r != model.RoleAuthor && r != model.RoleAdmin {
		fmt.Fprintf(os.Stderr, "unknown role %q\n", *role)
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	db, err := database.InitDB(cfg)
	if err != nil {
		panic(err)
	}
	defer database.Close(db)

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}

	user := model.User{
		ID:       uuid.NewString(),
		Name:     *name,
		Email:    *email,
		Password: string(hash),
		Role:     r,
	}
	if err := db.AutoMigrate(&model.User{}); err != nil {
		panic(err)
	}
	if err := db.Create(&user).Error; err != nil {
		fmt.Fprintf(os.Stderr, "create user: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("created %s (%s) id=%s\n", user.Email, user.Role, user.ID)
}
