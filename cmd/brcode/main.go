package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mkadit/brcode"
	"github.com/mkadit/brcode/internal/config"
	"github.com/mkadit/brcode/internal/logger"
	"github.com/mkadit/brcode/render"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	var (
		key    = flag.String("key", cfg.Merchant.PixKey, "pix key of the payee")
		name   = flag.String("name", cfg.Merchant.Name, "merchant name")
		city   = flag.String("city", cfg.Merchant.City, "merchant city")
		amount = flag.String("amount", "", "fixed amount, e.g. 10.50; empty lets the payer choose")
		txid   = flag.String("txid", "", "transaction reference; empty means a static code (***)")
		size   = flag.Int("size", cfg.Merchant.QRSize, "qr image size in pixels")
		out    = flag.String("png", "", "write the qr code as PNG to this file")
		show   = flag.Bool("qr", false, "print the qr code to the terminal")
	)
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	zapLogger, err := logger.NewZapLogger(cfg)
	if err != nil {
		log.Fatalf("Error while initializing zap logger: %v", err)
	}
	defer zapLogger.Sync()

	opts, err := cfg.EncoderOptions()
	if err != nil {
		zapLogger.Fatal("failed to build encoder options", zap.Error(err))
	}

	b := brcode.NewBuilder().
		PixKey(*key).
		MerchantName(*name).
		MerchantCity(*city).
		TransactionID(*txid).
		QRSize(*size)
	if *amount != "" {
		b.AmountString(*amount)
	}
	req, err := b.Build()
	b.Release()
	if err != nil {
		zapLogger.Fatal("invalid request", zap.Error(err))
	}

	payload, err := brcode.NewEncoder(opts...).Encode(req)
	if err != nil {
		zapLogger.Fatal("failed to encode payload", zap.Object("request", req), zap.Error(err))
	}
	fmt.Println(payload)

	if *show {
		text, err := render.Text(payload, qrcode.Medium)
		if err != nil {
			zapLogger.Fatal("failed to render qr code", zap.Error(err))
		}
		fmt.Print(text)
	}

	if *out != "" {
		png, err := render.NewPNG().Render(payload, req.Size())
		if err != nil {
			zapLogger.Fatal("failed to render qr code", zap.Error(err))
		}
		if err := os.WriteFile(*out, png, 0o644); err != nil {
			zapLogger.Fatal("failed to write png", zap.String("path", *out), zap.Error(err))
		}
		zapLogger.Info("qr code written", zap.String("path", *out), zap.Int("size", req.Size()))
	}
}
