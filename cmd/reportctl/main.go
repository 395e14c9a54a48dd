package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/ngenohkevin/bookstore-admin/internal/client"
	"github.com/ngenohkevin/bookstore-admin/internal/models"
	"github.com/ngenohkevin/bookstore-admin/internal/services"
)

func main() {
	var (
		server   = flag.String("server", "http://localhost:8080/router", "catalog backend base URL")
		token    = flag.String("token", os.Getenv("BOOKADMIN_TOKEN"), "bearer token (defaults to BOOKADMIN_TOKEN)")
		reportID = flag.String("id", "", "watch an existing report instead of generating a new one")
		interval = flag.Duration("interval", 3*time.Second, "status poll interval")
		timeout  = flag.Duration("timeout", 15*time.Minute, "overall timeout")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	backend := client.New(*server, 30*time.Second, logger)
	reportService := services.NewReportService(backend, nil, *interval, logger)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	id := *reportID
	if id == "" {
		resp, err := reportService.Generate(ctx, *token)
		if err != nil {
			log.Fatalf("generate failed: %v", err)
		}
		id = resp.ID
		log.Printf("report %s started (estimated %s, period %s)", resp.ID, resp.EstimatedTime, resp.Period)
	}

	report, err := reportService.Wait(ctx, *token, id, func(status models.ReportStatus) {
		fmt.Fprintf(os.Stderr, "\r%s: %3d%% %s", status.Status, status.Progress, status.Message)
	})
	fmt.Fprintln(os.Stderr)
	if err != nil {
		log.Fatalf("report failed: %v", err)
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Fatalf("encode report failed: %v", err)
	}
	fmt.Println(string(out))
}
