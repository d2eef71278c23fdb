package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

type LogStats struct {
	Checkouts         int
	OrdersPlaced      int
	CouponsCounted    int
	WebhookRejections int
	SignatureFailures int
	MailFailures      int
	FailedRequests    int
	TotalErrors       int
	StatusTransitions map[string]int
	ErrorPatterns     map[string]int
	MalformedLogLines int
}

// logEntry is the subset of a zap JSON line the report reads
type logEntry struct {
	Level  string `json:"level"`
	Msg    string `json:"msg"`
	Status int    `json:"status"`
}

var (
	placedRegex     = regexp.MustCompile(`^Placed (\d+) orders for customer`)
	transitionRegex = regexp.MustCompile(`^Order \S+ moved from (\w+) to (\w+)`)
)

func newLogStats() *LogStats {
	return &LogStats{
		StatusTransitions: make(map[string]int),
		ErrorPatterns:     make(map[string]int),
	}
}

func main() {
	logDir := flag.String("dir", "./logs", "directory holding the server log files")
	date := flag.String("date", time.Now().Format("2006-01-02"), "log date to analyze")
	flag.Parse()

	stats := newLogStats()
	for _, kind := range []string{"info", "error"} {
		logFile := filepath.Join(*logDir, fmt.Sprintf("%s-%s.log", kind, *date))
		if err := analyzeFile(logFile, stats); err != nil {
			fmt.Printf("Error reading log file %s: %v\n", logFile, err)
		}
	}

	printReport(os.Stdout, stats)
}

func analyzeFile(logFile string, stats *LogStats) error {
	file, err := os.Open(logFile)
	if err != nil {
		return err
	}
	defer file.Close()
	return analyze(file, stats)
}

// analyze reads zap JSON lines from r into stats
func analyze(r io.Reader, stats *LogStats) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var entry logEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			stats.MalformedLogLines++
			continue
		}
		record(entry, stats)
	}
	return scanner.Err()
}

func record(entry logEntry, stats *LogStats) {
	msg := entry.Msg

	if entry.Level == "error" {
		stats.TotalErrors++
		extractErrorPattern(msg, stats)
	}

	switch {
	case msg == "request":
		if entry.Status >= 500 {
			stats.FailedRequests++
		}
	case placedRegex.MatchString(msg):
		stats.Checkouts++
		var n int
		fmt.Sscanf(placedRegex.FindStringSubmatch(msg)[1], "%d", &n)
		stats.OrdersPlaced += n
	case strings.HasPrefix(msg, "Counted coupon "):
		stats.CouponsCounted++
	case strings.HasPrefix(msg, "Webhook rejected"):
		stats.WebhookRejections++
	case strings.HasPrefix(msg, "Invalid payment signature"):
		stats.SignatureFailures++
	case strings.HasPrefix(msg, "Order email to "):
		stats.MailFailures++
	default:
		if m := transitionRegex.FindStringSubmatch(msg); m != nil {
			stats.StatusTransitions[m[1]+" -> "+m[2]]++
		}
	}
}

func extractErrorPattern(msg string, stats *LogStats) {
	// Keep the message up to its first detail
	pattern := msg
	if i := strings.Index(pattern, ":"); i > 0 {
		pattern = pattern[:i]
	}
	stats.ErrorPatterns[strings.TrimSpace(pattern)]++
}

func printReport(w io.Writer, stats *LogStats) {
	fmt.Fprintln(w, "\n=== Log Analysis Report ===")
	fmt.Fprintln(w, "Generated:", time.Now().Format("2006-01-02 15:04:05"))

	fmt.Fprintln(w, "\n1. Orders:")
	fmt.Fprintf(w, "   Checkouts: %d\n", stats.Checkouts)
	fmt.Fprintf(w, "   Orders Placed: %d\n", stats.OrdersPlaced)
	fmt.Fprintf(w, "   Coupon Redemptions Counted: %d\n", stats.CouponsCounted)

	fmt.Fprintln(w, "\n2. Payments:")
	fmt.Fprintf(w, "   Webhook Rejections: %d\n", stats.WebhookRejections)
	fmt.Fprintf(w, "   Checkout Signature Failures: %d\n", stats.SignatureFailures)

	fmt.Fprintln(w, "\n3. Status Changes:")
	printTop(w, stats.StatusTransitions, 10, "changes")

	fmt.Fprintln(w, "\n4. Error Statistics:")
	fmt.Fprintf(w, "   Total Errors: %d\n", stats.TotalErrors)
	fmt.Fprintf(w, "   Failed Requests: %d\n", stats.FailedRequests)
	fmt.Fprintf(w, "   Mail Failures: %d\n", stats.MailFailures)
	fmt.Fprintf(w, "   Malformed Log Lines: %d\n", stats.MalformedLogLines)

	fmt.Fprintln(w, "\n5. Most Common Errors:")
	printTop(w, stats.ErrorPatterns, 5, "occurrences")
}

type counted struct {
	key   string
	count int
}

// topN returns the limit largest counts, ties broken by key
func topN(counts map[string]int, limit int) []counted {
	list := make([]counted, 0, len(counts))
	for key, count := range counts {
		list = append(list, counted{key, count})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].count != list[j].count {
			return list[i].count > list[j].count
		}
		return list[i].key < list[j].key
	})
	if len(list) > limit {
		list = list[:limit]
	}
	return list
}

func printTop(w io.Writer, counts map[string]int, limit int, unit string) {
	for _, c := range topN(counts, limit) {
		fmt.Fprintf(w, "   %s: %d %s\n", c.key, c.count, unit)
	}
}
