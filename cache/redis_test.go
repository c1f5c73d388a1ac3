package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
)

func TestRedisCache_Get_Hit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	cache := NewRedisCacheFromClient(db, 3600, "test:")

	mock.ExpectGet("test:mykey").SetVal("en")

	val, ok := cache.Get("mykey")
	if !ok {
		t.Error("Expected cache hit")
	}
	if val != "en" {
		t.Errorf("Expected 'en', got %q", val)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestRedisCache_Get_Miss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	cache := NewRedisCacheFromClient(db, 3600, "test:")

	mock.ExpectGet("test:mykey").RedisNil()

	val, ok := cache.Get("mykey")
	if ok {
		t.Error("Expected cache miss")
	}
	if val != "" {
		t.Errorf("Expected empty string, got %q", val)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestRedisCache_Get_ErrorIsMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	cache := NewRedisCacheFromClient(db, 3600, "test:")

	mock.ExpectGet("test:mykey").SetErr(errors.New("connection refused"))

	if _, ok := cache.Get("mykey"); ok {
		t.Error("Expected a backend error to read as a miss")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestRedisCache_Set(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	cache := NewRedisCacheFromClient(db, 3600, "test:")

	mock.ExpectSet("test:mykey", "ru", 3600*time.Second).SetVal("OK")

	err := cache.Set("mykey", "ru")
	if err != nil {
		t.Errorf("Set failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestRedisCache_Set_NoTTL(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	cache := NewRedisCacheFromClient(db, 0, "test:")

	mock.ExpectSet("test:mykey", "ru", 0).SetVal("OK")

	err := cache.Set("mykey", "ru")
	if err != nil {
		t.Errorf("Set failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestRedisCache_DefaultPrefix(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	cache := NewRedisCacheFromClient(db, 3600, "")

	mock.ExpectGet("guesslang:hash123:0.1.0").SetVal("ja")

	val, ok := cache.Get("hash123:0.1.0")
	if !ok || val != "ja" {
		t.Errorf("Expected 'ja', got %q (ok=%v)", val, ok)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestRedisCache_Entries(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	cache := NewRedisCacheFromClient(db, 3600, "test:")

	mock.ExpectScan(0, "test:*", 100).SetVal([]string{"test:a", "test:b"}, 7)
	mock.ExpectMGet("test:a", "test:b").SetVal([]interface{}{"en", nil})
	mock.ExpectScan(7, "test:*", 100).SetVal([]string{"test:c"}, 0)
	mock.ExpectMGet("test:c").SetVal([]interface{}{"fr"})

	entries, err := cache.Entries()
	if err != nil {
		t.Fatalf("Entries failed: %v", err)
	}

	if len(entries) != 2 {
		t.Errorf("Expected 2 entries, got %v", entries)
	}
	if entries["a"] != "en" || entries["c"] != "fr" {
		t.Errorf("Unexpected entries: %v", entries)
	}
	if _, ok := entries["b"]; ok {
		t.Error("Key expired between SCAN and MGET should be skipped")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestRedisCache_Entries_ScanError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	cache := NewRedisCacheFromClient(db, 3600, "test:")

	mock.ExpectScan(0, "test:*", 100).SetErr(errors.New("boom"))

	if _, err := cache.Entries(); err == nil {
		t.Error("Expected scan error")
	}
}

func TestRedisCache_Ping(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	cache := NewRedisCacheFromClient(db, 3600, "test:")

	mock.ExpectPing().SetVal("PONG")

	err := cache.Ping()
	if err != nil {
		t.Errorf("Ping failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestRedisCache_Close(t *testing.T) {
	db, _ := redismock.NewClientMock()

	cache := NewRedisCacheFromClient(db, 3600, "test:")

	err := cache.Close()
	if err != nil {
		t.Errorf("Close failed: %v", err)
	}
}

func TestNewRedisCache_BadURL(t *testing.T) {
	if _, err := NewRedisCache(RedisConfig{URL: "not-a-url"}); err == nil {
		t.Error("Expected error for invalid URL")
	}
}
