// Command taskboard is a small demonstration shell around the SDK: it
// resolves the stored session, optionally logs in, and prints the
// authenticated user's boards.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/common-nighthawk/go-figure"

	"github.com/jrsteele09/go-taskboard-client/client"
	"github.com/jrsteele09/go-taskboard-client/internal/config"
	"github.com/jrsteele09/go-taskboard-client/internal/logging"
	"github.com/jrsteele09/go-taskboard-client/session"
	"github.com/jrsteele09/go-taskboard-client/users"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %s\n", err)
	}
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	cfg, err := config.New()
	if err != nil {
		return err
	}
	logger := logging.New(cfg.LogLevel)
	displayAppname("Taskboard")

	sdk, err := client.New(cfg, logger)
	if err != nil {
		return err
	}

	ctx := context.Background()
	status := sdk.Resolve(ctx)
	fmt.Printf("Session: %s\n", status)

	if len(os.Args) == 4 && os.Args[1] == "login" {
		user, err := sdk.Login(ctx, users.LoginInput{Email: os.Args[2], Password: os.Args[3]})
		if err != nil {
			return err
		}
		fmt.Printf("Logged in as %s (%s)\n", user.Firstname, user.Email)
	}

	if sdk.Status() != session.StatusAuthenticated {
		fmt.Println("Not logged in. Usage: taskboard login <email> <password>")
		return nil
	}

	boardList, err := sdk.Boards(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%d board(s)\n", len(boardList))
	for _, b := range boardList {
		fmt.Printf("  - %s (%s)\n", b.Title, b.ID)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
