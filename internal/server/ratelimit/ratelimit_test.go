package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestLimiter_Allow(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	clientID := "127.0.0.1"
	endpoint := "/jobs"
	method := "GET"

	// Should allow requests up to limit
	for i := 0; i < 10; i++ {
		allowed, rateInfo := limiter.Allow(clientID, endpoint, method)
		if !allowed {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
		if rateInfo.Limit != 10 {
			t.Errorf("Expected limit 10, got %d", rateInfo.Limit)
		}
		if rateInfo.Remaining != 9-i {
			t.Errorf("Expected remaining %d, got %d", 9-i, rateInfo.Remaining)
		}
	}

	// 11th request should be denied
	allowed, rateInfo := limiter.Allow(clientID, endpoint, method)
	if allowed {
		t.Error("Expected 11th request to be denied")
	}
	if rateInfo.Remaining != 0 {
		t.Errorf("Expected remaining 0, got %d", rateInfo.Remaining)
	}
	if rateInfo.RetryAfter <= 0 {
		t.Error("Expected retry after to be positive")
	}
	if !rateInfo.ResetTime.After(time.Now()) {
		t.Error("Reset time should be in the future")
	}
}

func TestLimiter_Refill(t *testing.T) {
	config := &Config{
		Enabled: true,
		EndpointConfigs: []EndpointConfig{
			// 20 per second: one token every 50ms
			{Path: "/score", Method: "POST", Limit: 20, Window: time.Second, Burst: 1},
		},
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	if allowed, _ := limiter.Allow("127.0.0.1", "/score", "POST"); !allowed {
		t.Fatal("Expected first request to be allowed")
	}
	if allowed, _ := limiter.Allow("127.0.0.1", "/score", "POST"); allowed {
		t.Fatal("Expected second request to be denied")
	}

	time.Sleep(120 * time.Millisecond)

	if allowed, _ := limiter.Allow("127.0.0.1", "/score", "POST"); !allowed {
		t.Error("Expected request to be allowed after refill")
	}
}

func TestLimiter_Whitelist(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"127.0.0.1": true},
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	// Whitelisted IP should always be allowed
	for i := 0; i < 100; i++ {
		allowed, rateInfo := limiter.Allow("127.0.0.1", "/jobs", "GET")
		if !allowed {
			t.Errorf("Expected whitelisted request %d to be allowed", i+1)
		}
		if rateInfo.Limit != 0 {
			t.Errorf("Expected limit 0 for whitelisted, got %d", rateInfo.Limit)
		}
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Blacklist:     map[string]bool{"192.168.1.1": true},
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	allowed, _ := limiter.Allow("192.168.1.1", "/jobs", "GET")
	if allowed {
		t.Error("Expected blacklisted request to be denied")
	}
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, rateInfo := limiter.Allow("127.0.0.1", "/jobs", "GET")
		if !allowed {
			t.Errorf("Expected request %d to be allowed when disabled", i+1)
		}
		if rateInfo.Limit != 0 {
			t.Errorf("Expected limit 0 when disabled, got %d", rateInfo.Limit)
		}
	}
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 20; i++ {
		if allowed, _ := limiter.Allow("127.0.0.1", "/health", "GET"); !allowed {
			t.Fatalf("Expected health check %d to be allowed", i+1)
		}
	}
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/upload-resume", Method: "POST", Limit: 5, Window: time.Hour, Burst: 5},
		},
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	clientID := "127.0.0.1"

	for i := 0; i < 5; i++ {
		allowed, rateInfo := limiter.Allow(clientID, "/upload-resume", "POST")
		if !allowed {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
		if rateInfo.Limit != 5 {
			t.Errorf("Expected limit 5, got %d", rateInfo.Limit)
		}
	}

	allowed, rateInfo := limiter.Allow(clientID, "/upload-resume", "POST")
	if allowed {
		t.Error("Expected 6th request to be denied")
	}
	if rateInfo.Limit != 5 {
		t.Errorf("Expected limit 5, got %d", rateInfo.Limit)
	}

	// Different endpoint should use default limit
	allowed, rateInfo = limiter.Allow(clientID, "/jobs", "GET")
	if !allowed {
		t.Error("Expected different endpoint to be allowed")
	}
	if rateInfo.Limit != 1000 {
		t.Errorf("Expected default limit 1000, got %d", rateInfo.Limit)
	}

	// Different client has its own bucket
	if allowed, _ := limiter.Allow("10.0.0.2", "/upload-resume", "POST"); !allowed {
		t.Error("Expected another client to be allowed")
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	var wg sync.WaitGroup
	allowedCount := 0
	var mu sync.Mutex

	// Make 200 concurrent requests (should only allow 100)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed, _ := limiter.Allow("127.0.0.1", "/jobs", "GET")
			if allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	if allowedCount != 100 {
		t.Errorf("Expected 100 allowed requests, got %d", allowedCount)
	}
}

func TestLimiter_CleanupBuckets(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		limiter.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/jobs", "GET")
	}
	if n := limiter.bucketCount(); n != 10 {
		t.Fatalf("Expected 10 buckets, got %d", n)
	}

	limiter.cleanupBuckets(time.Now().Add(-time.Hour))
	if n := limiter.bucketCount(); n != 10 {
		t.Errorf("Expected recent buckets to survive, got %d", n)
	}

	limiter.cleanupBuckets(time.Now().Add(time.Second))
	if n := limiter.bucketCount(); n != 0 {
		t.Errorf("Expected idle buckets to be removed, got %d", n)
	}
}

func TestLimiter_Burst(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/score", Method: "POST", Limit: 10, Window: time.Minute, Burst: 5},
		},
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := limiter.Allow("127.0.0.1", "/score", "POST")
		if !allowed {
			t.Errorf("Expected burst request %d to be allowed", i+1)
		}
	}

	allowed, _ := limiter.Allow("127.0.0.1", "/score", "POST")
	if allowed {
		t.Error("Expected request after burst to be denied")
	}
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()
	defer limiter.Stop()

	allowed, rateInfo := limiter.Allow("127.0.0.1", "/jobs", "GET")
	if !allowed {
		t.Error("Expected request to be allowed with default config")
	}
	if rateInfo.Limit != 600 {
		t.Errorf("Expected default limit 600, got %d", rateInfo.Limit)
	}
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	if c := MatchEndpoint("/upload-resume", "POST", configs); c == nil || c.Path != "/upload-resume" {
		t.Errorf("Expected upload tier, got %+v", c)
	}
	if c := MatchEndpoint("/resumes/abc/stage", "PATCH", configs); c == nil || c.Path != "/resumes/{id}/stage" {
		t.Errorf("Expected wildcard match on /resumes/{id}/stage, got %+v", c)
	}
	if c := MatchEndpoint("/resumes/abc", "DELETE", configs); c == nil || c.Path != "/resumes/{id}" {
		t.Errorf("Expected wildcard match on /resumes/{id}, got %+v", c)
	}
	if c := MatchEndpoint("/resumes/abc/stage", "DELETE", configs); c != nil {
		t.Errorf("Expected no match for extra segments, got %+v", c)
	}
	if c := MatchEndpoint("/jobs/abc/resumes.csv", "GET", configs); c == nil || c.Limit != 30 {
		t.Errorf("Expected export tier, got %+v", c)
	}
	if c := MatchEndpoint("/jobs/abc/resumes", "GET", configs); c != nil {
		t.Errorf("Expected no match for resume listing, got %+v", c)
	}
	if c := MatchEndpoint("/jobs", "GET", configs); c != nil {
		t.Errorf("Expected no match for reads, got %+v", c)
	}
	if c := MatchEndpoint("/health", "GET", configs); c == nil || c.Limit != 0 {
		t.Errorf("Expected unlimited health check, got %+v", c)
	}
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "42")
	t.Setenv("RATE_LIMIT_UPLOAD_LIMIT", "3")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2")

	cfg := LoadConfig()
	if cfg.DefaultLimit != 42 {
		t.Errorf("Expected default limit 42, got %d", cfg.DefaultLimit)
	}
	if !cfg.Whitelist["10.0.0.2"] {
		t.Error("Expected 10.0.0.2 to be whitelisted")
	}
	upload := MatchEndpoint("/upload-resume", "POST", cfg.EndpointConfigs)
	if upload == nil || upload.Limit != 3 {
		t.Errorf("Expected upload limit 3, got %+v", upload)
	}

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	if LoadConfig().Enabled {
		t.Error("Expected rate limiting to be disabled")
	}
}

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"/resumes/{id}", "/resumes/42", true},
		{"/resumes/{id}", "/resumes/", false},
		{"/resumes/{id}", "/resumes/42/stage", false},
		{"/jobs/{id}/ranking", "/jobs/7/ranking", true},
		{"/jobs/{id}/ranking", "/jobs/7/resumes", false},
		{"/files/", "/files/a/b", true},
		{"/score", "/score/x", false},
	}
	for _, tt := range tests {
		if got := matchPattern(tt.pattern, tt.path); got != tt.want {
			t.Errorf("matchPattern(%q, %q) = %v, want %v", tt.pattern, tt.path, got, tt.want)
		}
	}
}

func TestLimiter_WildcardSharesBucket(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    600,
		DefaultWindow:   time.Minute,
		CleanupInterval: time.Hour,
		EndpointConfigs: []EndpointConfig{
			{Path: "/resumes/{id}", Method: "DELETE", Limit: 1, Window: time.Hour, Burst: 1},
		},
	})
	defer limiter.Stop()

	if allowed, _ := limiter.Allow("client", "/resumes/1", "DELETE"); !allowed {
		t.Fatal("Expected first delete to be allowed")
	}
	if allowed, _ := limiter.Allow("client", "/resumes/2", "DELETE"); allowed {
		t.Error("Expected second delete on another resume to share the bucket")
	}
}
