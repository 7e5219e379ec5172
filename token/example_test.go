package token_test

import (
	"context"
	"fmt"
	"log"

	"github.com/jonwraymond/authgate/token"
)

func ExampleNewService() {
	codec, err := token.NewCodec([]byte("my-signing-secret"), "my-service", "my-clients")
	if err != nil {
		log.Fatal(err)
	}

	svc, err := token.NewService(codec, "15m", "7d")
	if err != nil {
		log.Fatal(err)
	}

	pair, err := svc.Login(context.Background(), token.Claims{
		UserID: "user-42",
		Email:  "user@example.com",
		Role:   "user",
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("expires in:", pair.ExpiresIn)

	claims, err := codec.Verify(pair.AccessToken, token.KindAccess)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("subject:", claims.UserID)
	fmt.Println("role:", claims.Role)
	// Output:
	// expires in: 15m
	// subject: user-42
	// role: user
}

func ExampleService_Refresh() {
	codec, err := token.NewCodec([]byte("my-signing-secret"), "my-service", "my-clients")
	if err != nil {
		log.Fatal(err)
	}
	svc, err := token.NewService(codec, "15m", "7d")
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	pair, err := svc.Login(ctx, token.Claims{UserID: "user-42", Role: "user"})
	if err != nil {
		log.Fatal(err)
	}

	// A client presents its refresh token to obtain a new access token.
	access, err := svc.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		log.Fatal(err)
	}

	claims, err := codec.Verify(access, token.KindAccess)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("refreshed subject:", claims.UserID)
	// Output:
	// refreshed subject: user-42
}
