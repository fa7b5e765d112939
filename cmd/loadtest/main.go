package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// Result captures one HTTP outcome for the summary.
type Result struct {
	Status int
	Body   string
	Err    error
}

// Fires concurrent votes at one product from this machine's address.
// All requests share an address, so dedup says exactly one vote may be
// recorded; everything else must come back "already voted" and the ledger
// must hold a single row for the pair.
func main() {
	baseURL := flag.String("base", "http://localhost:8080", "server base url")
	productID := flag.Int("product", 1, "product id")
	platform := flag.String("platform", "amazon", "platform to vote for")
	total := flag.Int("n", 50, "total vote requests")
	concurrency := flag.Int("c", 25, "max concurrency")
	flag.Parse()

	client := &http.Client{Timeout: 5 * time.Second}

	fmt.Printf("start dedup test: product=%d platform=%s n=%d concurrency=%d\n",
		*productID, *platform, *total, *concurrency)
	results := runVotes(client, *baseURL, *productID, *platform, *total, *concurrency)
	printSummary("dedup", results)

	recorded := 0
	for _, r := range results {
		if r.Err == nil && r.Status == http.StatusOK {
			recorded++
		}
	}
	fmt.Printf("recorded votes: %d (want exactly 1 unless this address voted before)\n", recorded)

	// A second burst should be all rejections ("already voted" or 429 from
	// the rate limiter, depending on configured limits).
	fmt.Println("\nstart rate limit probe: 50 more requests, concurrency 50")
	results2 := runVotes(client, *baseURL, *productID, *platform, 50, 50)
	printSummary("rate_limit", results2)
}

func runVotes(client *http.Client, baseURL string, productID int, platform string, total, concurrency int) []Result {
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	results := make([]Result, total)

	for i := 0; i < total; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()
			results[idx] = voteOnce(client, baseURL, productID, platform)
		}(i)
	}

	wg.Wait()
	return results
}

func voteOnce(client *http.Client, baseURL string, productID int, platform string) Result {
	body, _ := json.Marshal(map[string]string{"platform": platform})
	url := fmt.Sprintf("%s/api/vote/%d", baseURL, productID)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return Result{Err: err}
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return Result{Status: resp.StatusCode, Body: string(b)}
}

// printSummary aggregates the status code distribution.
func printSummary(name string, results []Result) {
	count := map[int]int{}
	errCount := 0
	for _, r := range results {
		if r.Err != nil {
			errCount++
			continue
		}
		count[r.Status]++
	}
	fmt.Printf("[%s] http status summary:\n", name)
	for _, code := range []int{200, 400, 404, 429, 500} {
		if count[code] > 0 {
			fmt.Printf("  %d -> %d\n", code, count[code])
		}
	}
	if errCount > 0 {
		fmt.Printf("  errors -> %d\n", errCount)
	}
}
