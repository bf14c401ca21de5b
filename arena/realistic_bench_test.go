package arena

import (
	"runtime"
	"testing"
)

// BenchmarkRealisticUsage tests scenarios where arena should excel
func BenchmarkRealisticUsage(b *testing.B) {
	type TestStruct struct {
		ID   int64
		Data [56]byte // Total 64 bytes
	}

	// Test 1: Fill and drain a fixed arena (one block per cycle)
	b.Run("FillDrain/Bounded", func(b *testing.B) {
		a := NewBounded[TestStruct](100)
		handles := make([]Handle, 100)
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			for j := range handles {
				h, err := a.Allocate(1)
				if err != nil {
					b.Fatal(err)
				}
				_ = a.Construct(h, TestStruct{ID: int64(j)})
				handles[j] = h
			}
			for _, h := range handles {
				_ = a.Deallocate(h, 1)
			}
		}
	})

	b.Run("FillDrain/Heap", func(b *testing.B) {
		a := NewHeap[TestStruct]()
		handles := make([]Handle, 100)
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			for j := range handles {
				h, err := a.Allocate(1)
				if err != nil {
					b.Fatal(err)
				}
				_ = a.Construct(h, TestStruct{ID: int64(j)})
				handles[j] = h
			}
			for _, h := range handles {
				_ = a.Deallocate(h, 1)
			}
		}
	})

	b.Run("FillDrain/Builtin", func(b *testing.B) {
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			objects := make([]*TestStruct, 100)
			for j := range objects {
				objects[j] = &TestStruct{ID: int64(j)}
			}
			// Force GC to clean up (simulates request cleanup)
			if i%10 == 0 {
				runtime.GC()
			}
		}
	})

	// Test 2: Synchronized wrapper overhead
	b.Run("FillDrain/Synchronized", func(b *testing.B) {
		a := Synchronize[TestStruct](NewBounded[TestStruct](100))
		handles := make([]Handle, 100)
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			for j := range handles {
				h, err := a.Allocate(1)
				if err != nil {
					b.Fatal(err)
				}
				handles[j] = h
			}
			for _, h := range handles {
				_ = a.Deallocate(h, 1)
			}
		}
	})
}
