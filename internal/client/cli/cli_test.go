package cli

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/pubsub/internal/client/api"
	"github.com/iudanet/pubsub/internal/client/iocli"
	"github.com/iudanet/pubsub/internal/client/storage"
	"github.com/iudanet/pubsub/internal/config"
	"github.com/iudanet/pubsub/internal/crypto"
	"github.com/iudanet/pubsub/internal/models"
	pkgapi "github.com/iudanet/pubsub/pkg/api"
)

var testNow = time.Unix(1700000000, 0).Add(30 * time.Minute).UTC()

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.SubscribeKey = "sub-c-demo"
	cfg.PublishKey = "pub-c-demo"
	cfg.UserID = "tester"
	return cfg
}

// newTestCli собирает CLI с выводом в буфер
func newTestCli(cfg *config.Config, client api.ClientAPI, deps Deps) (*Cli, *bytes.Buffer) {
	out := &bytes.Buffer{}
	deps.IO = iocli.New(strings.NewReader(""), out)
	deps.Config = cfg
	deps.API = client
	deps.Now = func() time.Time { return testNow }
	return New(deps), out
}

func encodeGrantToken(t *testing.T) string {
	t.Helper()
	data, err := cbor.Marshal(map[string]any{
		"v":    2,
		"t":    1700000000,
		"ttl":  60,
		"uuid": "alice",
		"sig":  []byte{0x01, 0x02},
		"res": map[string]any{
			"chan": map[string]uint64{"news": 3},
			"uuid": map[string]uint64{"alice": 32},
		},
		"pat": map[string]any{
			"chan": map[string]uint64{"^room-.*$": 1},
		},
	})
	require.NoError(t, err)
	return base64.RawURLEncoding.EncodeToString(data)
}

func TestCli_Run_UnknownCommand(t *testing.T) {
	cli, _ := newTestCli(testConfig(), &api.ClientAPIMock{}, Deps{})
	err := cli.Run(context.Background(), "fly", nil)
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestCli_Run_Help(t *testing.T) {
	cli, out := newTestCli(testConfig(), &api.ClientAPIMock{}, Deps{})
	require.NoError(t, cli.Run(context.Background(), "help", nil))
	assert.Contains(t, out.String(), "subscribe <channel>...")
}

func TestCli_runTime(t *testing.T) {
	client := &api.ClientAPIMock{
		TimeFunc: func(ctx context.Context) (models.Timetoken, error) {
			return 17000000000000000, nil
		},
	}
	cli, out := newTestCli(testConfig(), client, Deps{})

	require.NoError(t, cli.Run(context.Background(), "time", nil))
	assert.Contains(t, out.String(), "17000000000000000")
	assert.Contains(t, out.String(), "2023-11-14T22:13:20Z")
}

func TestCli_runTime_Error(t *testing.T) {
	client := &api.ClientAPIMock{
		TimeFunc: func(ctx context.Context) (models.Timetoken, error) {
			return 0, errors.New("connection refused")
		},
	}
	cli, _ := newTestCli(testConfig(), client, Deps{})

	err := cli.Run(context.Background(), "time", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestCli_runPublish(t *testing.T) {
	tests := []struct {
		check   func(t *testing.T, req api.PublishRequest)
		name    string
		errMsg  string
		args    []string
		noPub   bool
		wantErr bool
	}{
		{
			name: "plain text becomes a JSON string",
			args: []string{"room", "hello world"},
			check: func(t *testing.T, req api.PublishRequest) {
				assert.Equal(t, "room", req.Channel)
				assert.JSONEq(t, `"hello world"`, string(req.Message))
				assert.Nil(t, req.Store)
				assert.False(t, req.UsePost)
			},
		},
		{
			name: "JSON is sent as is",
			args: []string{"room", `{"text":"hi"}`},
			check: func(t *testing.T, req api.PublishRequest) {
				assert.JSONEq(t, `{"text":"hi"}`, string(req.Message))
			},
		},
		{
			name: "flags",
			args: []string{"--no-store", "--ttl", "6", "--gzip", "--meta", `{"lang":"en"}`, "room", "42"},
			check: func(t *testing.T, req api.PublishRequest) {
				require.NotNil(t, req.Store)
				assert.False(t, *req.Store)
				assert.Equal(t, 6, req.TTL)
				assert.True(t, req.UsePost)
				assert.True(t, req.Compress)
				assert.JSONEq(t, `{"lang":"en"}`, string(req.Meta))
			},
		},
		{
			name:    "invalid meta",
			args:    []string{"--meta", "{broken", "room", "hi"},
			wantErr: true,
			errMsg:  "--meta is not valid JSON",
		},
		{
			name:    "invalid channel",
			args:    []string{"a,b", "hi"},
			wantErr: true,
			errMsg:  "cannot contain",
		},
		{
			name:    "missing message",
			args:    []string{"room"},
			wantErr: true,
			errMsg:  "usage: pubsub publish",
		},
		{
			name:    "missing publish key",
			args:    []string{"room", "hi"},
			noPub:   true,
			wantErr: true,
			errMsg:  "publish key is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &api.ClientAPIMock{
				PublishFunc: func(ctx context.Context, req api.PublishRequest) (models.Timetoken, error) {
					return 17000000000000001, nil
				},
			}
			cfg := testConfig()
			if tt.noPub {
				cfg.PublishKey = ""
			}
			cli, out := newTestCli(cfg, client, Deps{})

			err := cli.Run(context.Background(), "publish", tt.args)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Empty(t, client.PublishCalls())
				return
			}

			require.NoError(t, err)
			require.Len(t, client.PublishCalls(), 1)
			tt.check(t, client.PublishCalls()[0].Req)
			assert.Contains(t, out.String(), "17000000000000001")
		})
	}
}

func TestCli_runPublish_Encrypted(t *testing.T) {
	var sent json.RawMessage
	client := &api.ClientAPIMock{
		PublishFunc: func(ctx context.Context, req api.PublishRequest) (models.Timetoken, error) {
			sent = req.Message
			return 1, nil
		},
	}
	cfg := testConfig()
	cfg.CipherKey = "shared-secret"
	cli, _ := newTestCli(cfg, client, Deps{})

	require.NoError(t, cli.Run(context.Background(), "publish", []string{"room", `{"n":1}`}))

	var text string
	require.NoError(t, json.Unmarshal(sent, &text), "ciphertext is sent as a JSON string")

	reader, err := crypto.NewCipherContextFromPassphrase("shared-secret", "", cfg.SubscribeKey, crypto.EncodingBase64)
	require.NoError(t, err)
	plain, err := reader.DecryptPayload(sent)
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":1}`, string(plain))
}

func TestCli_runSignal(t *testing.T) {
	client := &api.ClientAPIMock{
		SignalFunc: func(ctx context.Context, channel string, message json.RawMessage) (models.Timetoken, error) {
			return 7, nil
		},
	}
	cli, out := newTestCli(testConfig(), client, Deps{})

	require.NoError(t, cli.Run(context.Background(), "signal", []string{"room", "typing"}))
	require.Len(t, client.SignalCalls(), 1)
	assert.Equal(t, "room", client.SignalCalls()[0].Channel)
	assert.JSONEq(t, `"typing"`, string(client.SignalCalls()[0].Message))
	assert.Contains(t, out.String(), "Signal sent to")
}

// subscribeAPI отдает ответы по порядку, а затем ждет отмены
func subscribeAPI(responses ...string) *api.ClientAPIMock {
	var mu sync.Mutex
	calls := 0
	return &api.ClientAPIMock{
		SubscribeFunc: func(ctx context.Context, req api.SubscribeRequest) ([]byte, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			mu.Lock()
			i := calls
			calls++
			mu.Unlock()
			if i < len(responses) {
				return []byte(responses[i]), nil
			}
			<-ctx.Done()
			return nil, ctx.Err()
		},
		LeaveFunc: func(ctx context.Context, channels, groups []string) error {
			return nil
		},
		SetAuthKeyFunc: func(authKey string) {},
	}
}

func TestCli_runSubscribe_MaxEvents(t *testing.T) {
	client := subscribeAPI(
		`{"t":{"t":"17000000000000010","r":1},"m":[
			{"c":"room","d":"hi","i":"alice","p":{"t":"17000000000000005","r":1}},
			{"c":"room","e":1,"d":{"typing":true},"i":"bob","p":{"t":"17000000000000006","r":1}},
			{"c":"room","d":"never printed"}
		]}`,
	)
	cursors := &storage.CursorStorageMock{
		GetCursorFunc: func(ctx context.Context, key string) (*storage.SavedCursor, error) {
			return nil, storage.ErrCursorNotFound
		},
		SaveCursorFunc: func(ctx context.Context, key string, cursor models.Cursor) error {
			return nil
		},
	}
	cli, out := newTestCli(testConfig(), client, Deps{Cursors: cursors})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, cli.Run(ctx, "subscribe", []string{"--max-events", "2", "room"}))

	text := out.String()
	assert.Contains(t, text, "connected")
	assert.Contains(t, text, `"hi"`)
	assert.Contains(t, text, "from alice")
	assert.Contains(t, text, `{"typing":true}`)
	assert.NotContains(t, text, "never printed")

	require.Len(t, cursors.GetCursorCalls(), 1)
	assert.Equal(t, "sub-c-demo|room|", cursors.GetCursorCalls()[0].Key)
	require.NotEmpty(t, cursors.SaveCursorCalls())
	assert.Equal(t, models.Cursor{Timetoken: 17000000000000010, Region: 1}, cursors.SaveCursorCalls()[0].Cursor)
}

func TestCli_runSubscribe_Resume(t *testing.T) {
	client := subscribeAPI(`{"t":{"t":"90","r":4},"m":[{"c":"room","d":"resumed"}]}`)
	cursors := &storage.CursorStorageMock{
		GetCursorFunc: func(ctx context.Context, key string) (*storage.SavedCursor, error) {
			return &storage.SavedCursor{Key: key, Cursor: models.Cursor{Timetoken: 80, Region: 4}}, nil
		},
		SaveCursorFunc: func(ctx context.Context, key string, cursor models.Cursor) error {
			return nil
		},
	}
	cli, out := newTestCli(testConfig(), client, Deps{Cursors: cursors})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, cli.Run(ctx, "subscribe", []string{"--max-events", "1", "room"}))

	assert.Contains(t, out.String(), "Resuming from 80@4")
	require.NotEmpty(t, client.SubscribeCalls())
	assert.Equal(t, models.Cursor{Timetoken: 80, Region: 4}, client.SubscribeCalls()[0].Req.Cursor)
}

func TestCli_runSubscribe_From(t *testing.T) {
	client := subscribeAPI(`{"t":{"t":"60","r":2},"m":[{"c":"room","d":1}]}`)
	cli, _ := newTestCli(testConfig(), client, Deps{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, cli.Run(ctx, "subscribe", []string{"--max-events", "1", "--from", "50", "--region", "2", "--presence", "room"}))

	req := client.SubscribeCalls()[0].Req
	assert.Equal(t, models.Cursor{Timetoken: 50, Region: 2}, req.Cursor)
	assert.Equal(t, []string{"room", "room-pnpres"}, req.Channels)
}

func TestCli_runSubscribe_Validation(t *testing.T) {
	cli, _ := newTestCli(testConfig(), &api.ClientAPIMock{}, Deps{})
	require.Error(t, cli.Run(context.Background(), "subscribe", nil))
	require.Error(t, cli.Run(context.Background(), "subscribe", []string{"bad channel"}))

	cfg := testConfig()
	cfg.SubscribeKey = ""
	cli, _ = newTestCli(cfg, &api.ClientAPIMock{}, Deps{})
	err := cli.Run(context.Background(), "subscribe", []string{"room"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "subscribe key is required")
}

func TestCli_runHistory(t *testing.T) {
	client := &api.ClientAPIMock{
		FetchHistoryFunc: func(ctx context.Context, req api.HistoryRequest) (*pkgapi.HistoryResponse, error) {
			return &pkgapi.HistoryResponse{
				Status: 200,
				Channels: map[string][]pkgapi.HistoryMessage{
					"room": {
						{Message: json.RawMessage(`"older"`), Timetoken: "200", UUID: "bob"},
						{Message: json.RawMessage(`"newer"`), Timetoken: "300", UUID: "alice", Meta: json.RawMessage(`{"k":1}`)},
					},
				},
			}, nil
		},
	}
	cli, out := newTestCli(testConfig(), client, Deps{})

	require.NoError(t, cli.Run(context.Background(), "history", []string{"--meta", "--end", "100", "room"}))

	text := out.String()
	assert.Contains(t, text, "History of room (2)")
	assert.Less(t, strings.Index(text, `"newer"`), strings.Index(text, `"older"`), "newest first")
	assert.Contains(t, text, "from alice")
	assert.Contains(t, text, `meta {"k":1}`)

	req := client.FetchHistoryCalls()[0].Req
	assert.Equal(t, []string{"room"}, req.Channels)
	require.NotNil(t, req.Page.End)
	assert.Equal(t, models.Timetoken(100), *req.Page.End)
	assert.Nil(t, req.Page.Start)
}

func TestCli_runHistory_Empty(t *testing.T) {
	client := &api.ClientAPIMock{
		FetchHistoryFunc: func(ctx context.Context, req api.HistoryRequest) (*pkgapi.HistoryResponse, error) {
			return &pkgapi.HistoryResponse{Status: 200}, nil
		},
	}
	cli, out := newTestCli(testConfig(), client, Deps{})

	require.NoError(t, cli.Run(context.Background(), "history", []string{"room"}))
	assert.Contains(t, out.String(), "No messages found.")
}

func TestCli_runObjects(t *testing.T) {
	total := 3
	client := &api.ClientAPIMock{
		ListUUIDMetadataFunc: func(ctx context.Context, req api.ListRequest) (*pkgapi.ListResponse[pkgapi.UUIDMetadata], error) {
			if req.Page != nil && req.Page.Start != nil && *req.Page.Start == "p2" {
				return &pkgapi.ListResponse[pkgapi.UUIDMetadata]{
					Status:     200,
					TotalCount: &total,
					Prev:       "p1",
					Data:       []pkgapi.UUIDMetadata{{ID: "carol"}},
				}, nil
			}
			return &pkgapi.ListResponse[pkgapi.UUIDMetadata]{
				Status:     200,
				TotalCount: &total,
				Next:       "p2",
				Data: []pkgapi.UUIDMetadata{
					{ID: "alice", Name: "Alice"},
					{ID: "bob", Custom: json.RawMessage(`{"team":"blue"}`)},
				},
			}, nil
		},
	}

	t.Run("single page", func(t *testing.T) {
		cli, out := newTestCli(testConfig(), client, Deps{})
		require.NoError(t, cli.Run(context.Background(), "objects", []string{"uuids"}))

		text := out.String()
		assert.Contains(t, text, "1. alice (Alice)")
		assert.Contains(t, text, `2. bob {"team":"blue"}`)
		assert.NotContains(t, text, "carol")
		assert.Contains(t, text, "Total: 3")
		assert.Contains(t, text, "Next page: --start p2")
	})

	t.Run("all pages", func(t *testing.T) {
		cli, out := newTestCli(testConfig(), client, Deps{})
		require.NoError(t, cli.Run(context.Background(), "objects", []string{"uuids", "--all"}))

		text := out.String()
		assert.Contains(t, text, "3. carol")
		assert.NotContains(t, text, "Next page")
	})

	t.Run("unknown listing", func(t *testing.T) {
		cli, _ := newTestCli(testConfig(), client, Deps{})
		err := cli.Run(context.Background(), "objects", []string{"spaces"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown listing")
	})
}

func TestCli_runObjects_Memberships(t *testing.T) {
	client := &api.ClientAPIMock{
		ListMembershipsFunc: func(ctx context.Context, userID string, req api.ListRequest) (*pkgapi.ListResponse[pkgapi.Membership], error) {
			return &pkgapi.ListResponse[pkgapi.Membership]{
				Status: 200,
				Data:   []pkgapi.Membership{{Channel: pkgapi.ChannelMetadata{ID: "room", Name: "Room"}}},
			}, nil
		},
	}
	cli, out := newTestCli(testConfig(), client, Deps{})

	require.NoError(t, cli.Run(context.Background(), "objects", []string{"memberships", "--user", "alice", "--limit", "5"}))
	assert.Contains(t, out.String(), "1. room (Room)")
	call := client.ListMembershipsCalls()[0]
	assert.Equal(t, "alice", call.UserID)
	assert.Equal(t, 5, call.Req.Limit)
}

func TestCli_runToken(t *testing.T) {
	raw := encodeGrantToken(t)

	t.Run("parse", func(t *testing.T) {
		cli, out := newTestCli(testConfig(), &api.ClientAPIMock{}, Deps{})
		require.NoError(t, cli.Run(context.Background(), "token", []string{"parse", raw}))

		text := out.String()
		assert.Contains(t, text, "Authorized: alice")
		assert.Contains(t, text, "channel news: read,write")
		assert.Contains(t, text, "uuid alice: get")
		assert.Contains(t, text, "channel ^room-.*$: read")
		assert.Contains(t, text, "2023-11-14T23:13:20Z")
		assert.NotContains(t, text, "(expired)")
	})

	t.Run("parse invalid", func(t *testing.T) {
		cli, _ := newTestCli(testConfig(), &api.ClientAPIMock{}, Deps{})
		require.Error(t, cli.Run(context.Background(), "token", []string{"parse", "not-a-token"}))
	})

	t.Run("set", func(t *testing.T) {
		tokens := &storage.TokenStorageMock{
			SaveTokenFunc: func(ctx context.Context, token *storage.TokenData) error {
				return nil
			},
		}
		cli, out := newTestCli(testConfig(), &api.ClientAPIMock{}, Deps{Tokens: tokens})
		require.NoError(t, cli.Run(context.Background(), "token", []string{"set", raw}))

		require.Len(t, tokens.SaveTokenCalls(), 1)
		saved := tokens.SaveTokenCalls()[0].Token
		assert.Equal(t, raw, saved.Token)
		assert.Equal(t, "alice", saved.UserID)
		assert.Equal(t, time.Unix(1700003600, 0).UTC(), saved.ExpiresAt.UTC())
		assert.Equal(t, testNow, saved.SavedAt)
		assert.Contains(t, out.String(), "Token saved")
	})

	t.Run("set legacy auth key", func(t *testing.T) {
		tokens := &storage.TokenStorageMock{
			SaveTokenFunc: func(ctx context.Context, token *storage.TokenData) error {
				return nil
			},
		}
		cli, _ := newTestCli(testConfig(), &api.ClientAPIMock{}, Deps{Tokens: tokens})
		require.NoError(t, cli.Run(context.Background(), "token", []string{"set", "plain-auth-key"}))

		saved := tokens.SaveTokenCalls()[0].Token
		assert.True(t, saved.ExpiresAt.IsZero())
		assert.False(t, saved.Expired(testNow))
	})

	t.Run("show missing", func(t *testing.T) {
		tokens := &storage.TokenStorageMock{
			GetTokenFunc: func(ctx context.Context) (*storage.TokenData, error) {
				return nil, storage.ErrTokenNotFound
			},
		}
		cli, out := newTestCli(testConfig(), &api.ClientAPIMock{}, Deps{Tokens: tokens})
		require.NoError(t, cli.Run(context.Background(), "token", []string{"show"}))
		assert.Contains(t, out.String(), "No token stored.")
	})

	t.Run("show expired", func(t *testing.T) {
		tokens := &storage.TokenStorageMock{
			GetTokenFunc: func(ctx context.Context) (*storage.TokenData, error) {
				return &storage.TokenData{
					Token:     "tok",
					SavedAt:   testNow.Add(-2 * time.Hour),
					ExpiresAt: testNow.Add(-time.Hour),
				}, nil
			},
		}
		cli, out := newTestCli(testConfig(), &api.ClientAPIMock{}, Deps{Tokens: tokens})
		require.NoError(t, cli.Run(context.Background(), "token", []string{"show"}))
		assert.Contains(t, out.String(), "Token:      tok")
		assert.Contains(t, out.String(), "(expired)")
	})

	t.Run("clear", func(t *testing.T) {
		tokens := &storage.TokenStorageMock{
			DeleteTokenFunc: func(ctx context.Context) error {
				return nil
			},
		}
		cli, _ := newTestCli(testConfig(), &api.ClientAPIMock{}, Deps{Tokens: tokens})
		require.NoError(t, cli.Run(context.Background(), "token", []string{"clear"}))
		assert.Len(t, tokens.DeleteTokenCalls(), 1)
	})

	t.Run("unknown subcommand", func(t *testing.T) {
		cli, _ := newTestCli(testConfig(), &api.ClientAPIMock{}, Deps{})
		require.Error(t, cli.Run(context.Background(), "token", []string{"rotate"}))
		require.Error(t, cli.Run(context.Background(), "token", nil))
	})
}

func TestCli_applyStoredToken(t *testing.T) {
	tokens := &storage.TokenStorageMock{
		GetTokenFunc: func(ctx context.Context) (*storage.TokenData, error) {
			return &storage.TokenData{Token: "stored", ExpiresAt: testNow.Add(-time.Minute)}, nil
		},
	}
	client := &api.ClientAPIMock{
		SetAuthKeyFunc: func(authKey string) {},
		TimeFunc: func(ctx context.Context) (models.Timetoken, error) {
			return 1, nil
		},
		PublishFunc: func(ctx context.Context, req api.PublishRequest) (models.Timetoken, error) {
			return 1, nil
		},
	}
	cli, out := newTestCli(testConfig(), client, Deps{Tokens: tokens})

	require.NoError(t, cli.Run(context.Background(), "publish", []string{"room", "hi"}))
	require.Len(t, client.SetAuthKeyCalls(), 1)
	assert.Equal(t, "stored", client.SetAuthKeyCalls()[0].AuthKey)
	assert.Contains(t, out.String(), "stored access token expired")

	// Токен из конфигурации важнее сохраненного
	cfg := testConfig()
	cfg.AuthToken = "from-config"
	cli, _ = newTestCli(cfg, client, Deps{Tokens: tokens})
	require.NoError(t, cli.Run(context.Background(), "publish", []string{"room", "hi"}))
	assert.Len(t, client.SetAuthKeyCalls(), 1)
}

func TestCli_runCursor(t *testing.T) {
	saved := []storage.SavedCursor{
		{Key: "sub-c-demo|a,b|feeds", Cursor: models.Cursor{Timetoken: 10, Region: 1}, SavedAt: testNow},
		{Key: "sub-c-demo|room|", Cursor: models.Cursor{Timetoken: 20, Region: 2}, SavedAt: testNow},
	}
	newCursors := func() *storage.CursorStorageMock {
		return &storage.CursorStorageMock{
			ListCursorsFunc: func(ctx context.Context) ([]storage.SavedCursor, error) {
				return saved, nil
			},
			DeleteCursorFunc: func(ctx context.Context, key string) error {
				return nil
			},
		}
	}

	t.Run("show", func(t *testing.T) {
		cli, out := newTestCli(testConfig(), &api.ClientAPIMock{}, Deps{Cursors: newCursors()})
		require.NoError(t, cli.Run(context.Background(), "cursor", []string{"show"}))

		text := out.String()
		assert.Contains(t, text, "Saved cursors (2)")
		assert.Contains(t, text, "a,b groups:feeds")
		assert.Contains(t, text, "20@2")
	})

	t.Run("reset one", func(t *testing.T) {
		cursors := newCursors()
		cli, _ := newTestCli(testConfig(), &api.ClientAPIMock{}, Deps{Cursors: cursors})
		require.NoError(t, cli.Run(context.Background(), "cursor", []string{"reset", "room", "room"}))

		require.Len(t, cursors.DeleteCursorCalls(), 1)
		assert.Equal(t, "sub-c-demo|room|", cursors.DeleteCursorCalls()[0].Key)
	})

	t.Run("reset all", func(t *testing.T) {
		cursors := newCursors()
		cli, out := newTestCli(testConfig(), &api.ClientAPIMock{}, Deps{Cursors: cursors})
		require.NoError(t, cli.Run(context.Background(), "cursor", []string{"reset", "--all"}))

		assert.Len(t, cursors.DeleteCursorCalls(), 2)
		assert.Contains(t, out.String(), "Removed 2 cursors")
	})

	t.Run("no storage", func(t *testing.T) {
		cli, _ := newTestCli(testConfig(), &api.ClientAPIMock{}, Deps{})
		require.Error(t, cli.Run(context.Background(), "cursor", []string{"show"}))
	})
}

func TestCli_runConfig_Redacts(t *testing.T) {
	cfg := testConfig()
	cfg.AuthToken = "super-secret-token"
	cfg.CipherKey = "super-secret-cipher"
	cli, out := newTestCli(cfg, &api.ClientAPIMock{}, Deps{})

	require.NoError(t, cli.Run(context.Background(), "config", nil))
	text := out.String()
	assert.Contains(t, text, "sub-c-demo")
	assert.Contains(t, text, "***")
	assert.NotContains(t, text, "super-secret")
}

func TestDescribeCursorKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{key: "k|a,b|", want: "a,b"},
		{key: "k||g", want: "groups:g"},
		{key: "k|a|g", want: "a groups:g"},
		{key: "garbage", want: "garbage"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, describeCursorKey(tt.key), tt.key)
	}
}
