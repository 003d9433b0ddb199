// Package topstats provides a client for the topstats.gg Discord bot
// statistics API.
//
// The client authenticates with an API token, issues plain HTTPS GET requests
// against the service's fixed endpoints and maps the JSON responses into
// typed values. It performs no caching, no persistence and no automatic
// retries; throttling by the service is surfaced to the caller as a
// RatelimitError with the service's retry hint.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := topstats.NewClient("your-api-token", logger,
//		topstats.WithTimeout(10*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	ctx := context.Background()
//	bot, err := client.GetBot(ctx, 432610292342587392)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(bot.Name, bot.ServerCount.Value)
//
// Construction performs no network I/O; use TestConnection to verify the
// token. After Close every operation fails fast with ErrClientClosed.
//
// # Comparisons
//
// The CompareBot* helpers fetch each bot's history independently and pair the
// series index by index, truncated to the shortest one. The pairing is
// positional, not timestamp-aligned; see ComparedRow.
//
// # Errors
//
// Local misuse (closed client, invalid ID, bad comparison arity) is reported
// through sentinel errors before any request is made. Remote failures are
// reported as *RequestError with the HTTP status and service message, except
// HTTP 429 which becomes *RatelimitError. Transport failures are wrapped in
// *RequestError with a zero status code.
package topstats
