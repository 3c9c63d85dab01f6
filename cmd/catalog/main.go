package main

import (
	"time"

	"github.com/niksmo/product-categories/config"
	"github.com/niksmo/product-categories/internal/app"
	"github.com/niksmo/product-categories/pkg/sigctx"
)

const closeTimeout = 5 * time.Second

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	catalog := app.New(sigCtx, cfg)

	catalog.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := sigctx.CloseContext(closeTimeout)
	defer cancel()

	catalog.Close(ctx)
}
