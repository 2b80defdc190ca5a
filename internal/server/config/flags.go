package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/blogkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-S string   document store: memory, bolt or postgres
//	-d string   PostgreSQL DSN
//	-b string   bolt database file
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//
// os.Args is filtered with flagx.FilterArgs first, so flags owned by other
// loaders (-c/-config) do not make the parse fail.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-S", "-d", "-b", "-s", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.Store, "S", config.Store, "document store (memory, bolt, postgres)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.BoltPath, "b", config.BoltPath, "bolt database file")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -t only counts when given, so sub-minute values from other layers survive
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
		}
	})
}
