package storage

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func BenchmarkDBStorage_SaveMetric(b *testing.B) {
	storage, mock := newMockStorage(b)
	ctx := context.Background()
	m := testMetric("Revenue", 78)

	for i := 0; i < b.N; i++ {
		mock.ExpectExec("INSERT INTO metrics").WillReturnResult(sqlmock.NewResult(1, 1))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := storage.SaveMetric(ctx, m); err != nil {
			b.Fatalf("Error in SaveMetric: %v", err)
		}
	}
}

func BenchmarkMemStorage_ListMetrics(b *testing.B) {
	storage := NewMemStorage("")
	ctx := context.Background()
	for i := 0; i < 50; i++ {
		_ = storage.SaveMetric(ctx, testMetric(string(rune('a'+i%26))+string(rune('a'+i/26)), float64(i)))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := storage.ListMetrics(ctx); err != nil {
			b.Fatal(err)
		}
	}
}
