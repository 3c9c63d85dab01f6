package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/niksmo/product-categories/config"
	"github.com/niksmo/product-categories/internal/adapter"
	"github.com/niksmo/product-categories/pkg/sigctx"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

const (
	partitions        = 3
	replicationFactor = 3
	retention         = "604800000" // 7 days
)

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()
	if !cfg.SearchEventsEnabled() {
		fmt.Println("broker.seed_brokers is empty, nothing to create")
		return
	}

	cl, err := createClient(cfg)
	if err != nil {
		printFail(err)
		return
	}
	defer cl.Close()

	printStart(cfg)
	defer printComplete(time.Now())

	if err := makeTopics(sigCtx, cl, cfg.Broker.Topics.SearchEvents); err != nil {
		printFail(err)
	}
}

func createClient(cfg config.Config) (*kadm.Client, error) {
	opts := []kgo.Opt{kgo.SeedBrokers(cfg.Broker.SeedBrokers...)}
	if cfg.BrokerTLSEnabled() {
		t := cfg.Broker.TLS
		tlsConfig, err := adapter.MakeTLSConfig(t.CA, t.Cert, t.Key)
		if err != nil {
			return nil, err
		}
		opts = append(opts, kgo.DialTLSConfig(tlsConfig))
	}
	return kadm.NewOptClient(opts...)
}

func makeTopics(ctx context.Context, cl *kadm.Client, topics ...string) error {
	var (
		cleanupPolicy = "delete"
		minISR        = "1"
		retentionMs   = retention
	)

	config := map[string]*string{
		"cleanup.policy":      &cleanupPolicy,
		"min.insync.replicas": &minISR,
		"retention.ms":        &retentionMs,
	}

	responses, err := cl.CreateTopics(
		ctx,
		partitions,
		replicationFactor,
		config,
		topics...,
	)
	if err != nil {
		return err
	}

	var errs []error
	for _, res := range responses.Sorted() {
		if res.Err != nil {
			if errors.Is(res.Err, kerr.TopicAlreadyExists) {
				fmt.Printf("topic: %q already exists\n", res.Topic)
			} else {
				errs = append(errs, res.Err)
			}
			continue
		}
		fmt.Printf("topic: %q successfully created\n", res.Topic)
	}

	return errors.Join(errs...)
}

func printStart(cfg config.Config) {
	fmt.Printf("initializing topics...\n\t- %q\n\n", cfg.Broker.Topics.SearchEvents)
}

func printComplete(start time.Time) {
	fmt.Printf("\ncomplete in %s\n", time.Since(start))
}

func printFail(err error) {
	fmt.Printf("failed to create topics: \n%s\n", err)
}
