package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/improveai/firehose-unpack/config"
	"github.com/improveai/firehose-unpack/logging"
	"github.com/improveai/firehose-unpack/storage"
	"github.com/improveai/firehose-unpack/unpack"
)

func main() {
	logging.Initialize("unpack-firehose")

	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		lambda.Start(handle)
		return
	}

	// local development mode: run one batch read from a file
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: unpack-firehose <notification.json>")
		os.Exit(1)
	}
	raw, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	var batch events.SNSEvent
	if err := json.Unmarshal(raw, &batch); err != nil {
		fmt.Fprintf(os.Stderr, "invalid notification batch: %v\n", err)
		os.Exit(1)
	}
	if err := handle(context.Background(), batch); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func handle(ctx context.Context, batch events.SNSEvent) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	store, err := storage.NewS3Store(ctx, &storage.S3Config{Region: cfg.Region})
	if err != nil {
		return err
	}
	_, err = unpack.New(store, cfg).Run(ctx, batch)
	return err
}
