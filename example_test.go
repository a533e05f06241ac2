package multiwork_test

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.alexhamlin.co/multiwork"
)

func ExampleCompute() {
	w := multiwork.New(multiwork.NewThreadPoolExecutor(4))
	p := multiwork.Compute(w, func() (int, error) {
		return 6 * 7, nil
	})
	v, _ := p.Wait()
	fmt.Println(v)
	// Output: 42
}

func ExampleScope() {
	w := multiwork.New(multiwork.NewThreadPoolExecutor(4))
	values := []int{1, 2, 3, 4, 5, 6, 7, 8}

	var total atomic.Int64
	multiwork.Scope(context.Background(), w, len(values),
		func(_ context.Context, sp *multiwork.Spawner, chunk int) struct{} {
			for start := 0; start < len(values); start += chunk {
				end := min(start+chunk, len(values))
				sp.Spawn(func(context.Context, *multiwork.Spawner) {
					sum := 0
					for _, v := range values[start:end] {
						sum += v
					}
					total.Add(int64(sum))
				})
			}
			return struct{}{}
		})

	fmt.Println(total.Load())
	// Output: 36
}

func ExampleWorker_LogNumCPUs() {
	w := multiwork.New(multiwork.NewThreadPoolExecutor(8))
	fmt.Println(w.LogNumCPUs())
	// Output: 3
}

func ExampleInlineExecutor() {
	// An inline worker runs the same code with no concurrency at all.
	w := multiwork.New(multiwork.InlineExecutor{})

	processed := 0
	chunk := multiwork.Scope(context.Background(), w, 10,
		func(_ context.Context, sp *multiwork.Spawner, chunk int) int {
			sp.Spawn(func(context.Context, *multiwork.Spawner) {
				processed = chunk
			})
			return chunk
		})

	fmt.Println(chunk, processed)
	// Output: 10 10
}
