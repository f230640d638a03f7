package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/kirillkom/realty-assistant/internal/bootstrap"
	"github.com/kirillkom/realty-assistant/internal/config"
	"github.com/kirillkom/realty-assistant/internal/core/domain"
	"github.com/kirillkom/realty-assistant/internal/core/usecase"
	"github.com/kirillkom/realty-assistant/internal/observability/logging"
)

func main() {
	roleFlag := flag.String("role", string(domain.RoleCustomer), "role to chat as: customer or realtor")
	flag.Parse()

	role, ok := domain.ParseRole(*roleFlag)
	if !ok {
		log.Fatalf("unknown role %q, choose one of: customer, realtor", *roleFlag)
	}

	cfg := config.Load()
	logging.Setup("realty-chat", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	fmt.Println(usecase.MsgGreeting)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("Введіть запит: ")
		if !scanner.Scan() {
			break
		}
		if ctx.Err() != nil {
			break
		}

		outcome, err := app.Chat.Handle(ctx, role, scanner.Text())
		if err != nil {
			fmt.Printf("Помилка: %s\n", domain.UserMessage(err))
			continue
		}

		fmt.Println(outcome.Reply)
		if outcome.Quit {
			break
		}
	}

	if err := scanner.Err(); err != nil {
		log.Printf("read input: %v", err)
	}
}
