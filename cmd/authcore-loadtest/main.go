package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	authcore "github.com/MrEthical07/authcore"
	"github.com/MrEthical07/authcore/password"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

const seedPassword = "loadtest-password-1"

func main() {
	var (
		users       = flag.Int("users", 10000, "number of accounts to seed")
		concurrency = flag.Int("concurrency", 64, "number of concurrent workers")
		ops         = flag.Int("ops", 20000, "operations per phase (login + validate)")
		redisAddr   = flag.String("redis-addr", "", "redis address; if empty, REDIS_ADDR env or miniredis is used")
		prefix      = flag.String("prefix", "ac", "deny list key prefix")
		cost        = flag.Int("cost", 6, "bcrypt cost for seeded hashes")
	)
	flag.Parse()

	if *users <= 0 || *concurrency <= 0 || *ops <= 0 {
		fmt.Fprintln(os.Stderr, "users, concurrency, and ops must be > 0")
		os.Exit(2)
	}

	ctx := context.Background()

	addr := *redisAddr
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}

	var (
		cleanup func()
		client  *redis.Client
	)
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start miniredis: %v\n", err)
			os.Exit(1)
		}
		addr = mr.Addr()
		client = redis.NewClient(&redis.Options{Addr: addr})
		cleanup = func() {
			_ = client.Close()
			mr.Close()
		}
		fmt.Printf("using miniredis at %s\n", addr)
	} else {
		client = redis.NewClient(&redis.Options{Addr: addr})
		cleanup = func() { _ = client.Close() }
		fmt.Printf("using redis at %s\n", addr)
	}
	defer cleanup()

	codec, err := password.NewCodec(password.Config{Cost: *cost})
	if err != nil {
		fmt.Fprintf(os.Stderr, "codec init failed: %v\n", err)
		os.Exit(1)
	}

	// One shared hash keeps seeding fast; the verify cost per login is
	// identical across accounts either way.
	seedHash, err := codec.Hash(seedPassword)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed hash failed: %v\n", err)
		os.Exit(1)
	}

	store := newMemStore()
	identifiers := make([]string, *users)
	fmt.Printf("seeding %d accounts...\n", *users)
	startSeed := time.Now()
	for i := 0; i < *users; i++ {
		ident := "user-" + strconv.Itoa(i) + "@example.com"
		identifiers[i] = ident
		store.put(authcore.UserRecord{
			UserID:       "u" + strconv.Itoa(i),
			Identifier:   ident,
			PasswordHash: seedHash,
			Role:         "user",
			Active:       true,
		})
	}
	fmt.Printf("seeded in %s\n", time.Since(startSeed).Round(time.Millisecond))

	cfg := authcore.DefaultConfig()
	cfg.Password.Cost = *cost
	cfg.DenyList.RedisPrefix = *prefix

	engine, err := authcore.New().
		WithConfig(cfg).
		WithRedis(client).
		WithUserStore(store).
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "engine build failed: %v\n", err)
		os.Exit(1)
	}
	defer engine.Close()

	loginStats, tokens := runLoginPhase(ctx, engine, identifiers, *ops, *concurrency)
	validateStats := runValidatePhase(ctx, engine, tokens, *ops, *concurrency)

	fmt.Println("---- results ----")
	printStats("login", loginStats)
	printStats("validate", validateStats)
}

func runLoginPhase(ctx context.Context, engine *authcore.Engine, identifiers []string, ops, concurrency int) (phaseStats, []string) {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		tokens    = make([]string, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*7919))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				ident := identifiers[r.Intn(len(identifiers))]
				t0 := time.Now()
				token, err := engine.Login(ctx, ident, seedPassword)
				d := time.Since(t0)
				if err != nil {
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				if err == nil {
					tokens = append(tokens, token)
				}
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures), tokens
}

func runValidatePhase(ctx context.Context, engine *authcore.Engine, tokens []string, ops, concurrency int) phaseStats {
	if len(tokens) == 0 {
		return phaseStats{}
	}

	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*6151))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				token := tokens[r.Intn(len(tokens))]
				t0 := time.Now()
				_, err := engine.Validate(ctx, token)
				d := time.Since(t0)
				if err != nil {
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	idx := (len(samples) - 1) * p / 100
	return samples[idx]
}

func printStats(name string, s phaseStats) {
	fmt.Printf("%s: ops=%d failures=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.failures,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}

type memStore struct {
	mu      sync.RWMutex
	byID    map[string]authcore.UserRecord
	byIdent map[string]string
}

func newMemStore() *memStore {
	return &memStore{
		byID:    make(map[string]authcore.UserRecord),
		byIdent: make(map[string]string),
	}
}

func (s *memStore) put(u authcore.UserRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[u.UserID] = u
	s.byIdent[u.Identifier] = u.UserID
}

func (s *memStore) GetUserByIdentifier(_ context.Context, identifier string) (authcore.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byIdent[identifier]
	if !ok {
		return authcore.UserRecord{}, authcore.ErrUserNotFound
	}
	return s.byID[id], nil
}

func (s *memStore) GetUserByID(_ context.Context, userID string) (authcore.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[userID]
	if !ok {
		return authcore.UserRecord{}, authcore.ErrUserNotFound
	}
	return u, nil
}

func (s *memStore) CreateUser(_ context.Context, input authcore.CreateUserInput) (authcore.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byIdent[input.Identifier]; exists {
		return authcore.UserRecord{}, authcore.ErrAccountExists
	}

	u := authcore.UserRecord{
		UserID:       "u" + strconv.Itoa(len(s.byID)),
		Identifier:   input.Identifier,
		FullName:     input.FullName,
		PasswordHash: input.PasswordHash,
		Role:         input.Role,
		Active:       true,
	}
	s.byID[u.UserID] = u
	s.byIdent[u.Identifier] = u.UserID
	return u, nil
}
