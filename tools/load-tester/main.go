package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Races concurrent order submissions against a single product so the
// stock-conflict path can be observed under load: with N workers fighting
// over limited stock, most requests should land on 409 once stock runs out,
// and the sum of 201s must never oversell.
func main() {
	targetURL := flag.String("url", "http://localhost:8080/api/orders", "Target URL for order creation")
	token := flag.String("token", "", "Bearer token of a client account")
	tenant := flag.String("tenant", "", "Tenant slug sent in the X-Tenant header")
	productID := flag.Int64("product", 1, "Product id every order competes for")
	quantity := flag.Int("qty", 1, "Quantity per order")
	concurrency := flag.Int("c", 10, "Number of concurrent workers")
	duration := flag.Duration("d", 30*time.Second, "Duration of the load test")
	rps := flag.Int("rps", 100, "Requests per second limit")
	flag.Parse()

	if *token == "" || *tenant == "" {
		log.Fatal("both -token and -tenant are required")
	}

	runID := uuid.NewString()
	pickup := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	log.Printf("Starting order load test %s on %s", runID, *targetURL)
	log.Printf("Concurrency: %d, Duration: %s, RPS: %d", *concurrency, *duration, *rps)

	var wg sync.WaitGroup
	var createdCount, conflictCount, limitedCount, errorCount atomic.Int64
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	limiter := rate.NewLimiter(rate.Limit(*rps), 100) // Allow bursts up to 100

	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			client := &http.Client{
				Timeout: 5 * time.Second,
			}

			for {
				select {
				case <-ctx.Done():
					return
				default:
					limiter.Wait(ctx) // Wait for token from rate limiter

					payload := fmt.Sprintf(`{"items": [{"productId": %d, "quantity": %d}], "pickupDate": "%s"}`,
						*productID, *quantity, pickup)

					req, err := http.NewRequestWithContext(ctx, http.MethodPost, *targetURL, bytes.NewBufferString(payload))
					if err != nil {
						continue // Should not happen
					}
					req.Header.Set("Content-Type", "application/json")
					req.Header.Set("Authorization", "Bearer "+*token)
					req.Header.Set("X-Tenant", *tenant)

					resp, err := client.Do(req)
					if err != nil {
						errorCount.Add(1)
						continue
					}

					switch resp.StatusCode {
					case http.StatusCreated:
						createdCount.Add(1)
					case http.StatusConflict:
						conflictCount.Add(1)
					case http.StatusTooManyRequests:
						limitedCount.Add(1)
					default:
						errorCount.Add(1)
					}
					resp.Body.Close()
				}
			}
		}()
	}

	wg.Wait()

	totalRequests := createdCount.Load() + conflictCount.Load() + limitedCount.Load() + errorCount.Load()
	actualRPS := float64(totalRequests) / duration.Seconds()

	log.Println("Load test finished.")
	log.Printf("Total Requests: %d", totalRequests)
	log.Printf("Created (201): %d", createdCount.Load())
	log.Printf("Stock Conflicts (409): %d", conflictCount.Load())
	log.Printf("Rate Limited (429): %d", limitedCount.Load())
	log.Printf("Errors: %d", errorCount.Load())
	log.Printf("Actual RPS: %.2f", actualRPS)
}
