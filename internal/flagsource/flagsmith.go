package flagsource

import (
	"context"
	"fmt"

	flagsmith "github.com/Flagsmith/flagsmith-go-client/v4"

	fakeapp "github.com/Flagsmith/fakeapp-go"
	"github.com/Flagsmith/fakeapp-go/internal/config"
)

// VersionHeader carries fakeapp's user agent on every Flagsmith request.
const VersionHeader = "X-Fakeapp-Version"

// NewFlagsmithClient builds an SDK client from configuration. With an offline
// environment document the client never goes to the network.
func NewFlagsmithClient(cfg config.Flagsmith) (*flagsmith.Client, error) {
	options := []flagsmith.Option{
		flagsmith.WithBaseURL(cfg.BaseURL),
		flagsmith.WithRequestTimeout(cfg.Timeout),
		flagsmith.WithRetries(cfg.Retries, cfg.RetryWait),
		flagsmith.WithCustomHeaders(map[string]string{VersionHeader: fakeapp.UserAgent()}),
	}
	if cfg.OfflineEnvironment != "" {
		handler, err := flagsmith.NewLocalFileHandler(cfg.OfflineEnvironment)
		if err != nil {
			return nil, fakeapp.NewConfigurationError("reading offline environment %q: %v", cfg.OfflineEnvironment, err)
		}
		options = append(options, flagsmith.WithOfflineHandler(handler), flagsmith.WithOfflineMode())
	}
	return flagsmith.NewClient(cfg.EnvironmentKey, options...), nil
}

// Flagsmith takes environment flag snapshots from an SDK client.
type Flagsmith struct {
	client *flagsmith.Client
}

func NewFlagsmith(client *flagsmith.Client) *Flagsmith {
	return &Flagsmith{client: client}
}

func (f *Flagsmith) Flags(ctx context.Context) (*fakeapp.Flags, error) {
	flags, err := f.client.GetEnvironmentFlags(ctx)
	if err != nil {
		return nil, fakeapp.NewProviderUnavailableError("fetching environment flags", err)
	}
	return FromSDK(flags.AllFlags()), nil
}

// FromSDK converts SDK flags into a snapshot. Null values are absent;
// numbers and booleans are formatted as text.
func FromSDK(sdkFlags []flagsmith.Flag) *fakeapp.Flags {
	flags := make(map[string]fakeapp.Flag, len(sdkFlags))
	for _, f := range sdkFlags {
		flag := fakeapp.Flag{Enabled: f.Enabled}
		switch v := f.Value.(type) {
		case nil:
		case string:
			flag.Value = &v
		default:
			s := fmt.Sprint(v)
			flag.Value = &s
		}
		flags[f.FeatureName] = flag
	}
	return fakeapp.NewFlags(flags)
}
