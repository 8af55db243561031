package ops

import (
	"context"
	stderrors "errors"
	"fmt"
	"iter"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/kbukum/amalfi/errors"
	"github.com/kbukum/amalfi/fn"
	"github.com/kbukum/amalfi/seq"
)

func isEven(n int) bool { return n%2 == 0 }

func emphasize(_ context.Context, s string) (string, error) {
	return strings.ToUpper(s) + "!", nil
}

// barrier returns an async func that only completes once n calls are in
// flight at the same time.
func barrier[T any](t *testing.T, n int) fn.AsyncFunc[T, T] {
	t.Helper()
	var mu sync.Mutex
	arrived := 0
	all := make(chan struct{})
	return func(ctx context.Context, v T) (T, error) {
		mu.Lock()
		arrived++
		if arrived == n {
			close(all)
		}
		mu.Unlock()
		select {
		case <-all:
			return v, nil
		case <-time.After(2 * time.Second):
			var zero T
			return zero, fmt.Errorf("call for %v was not concurrent", v)
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
}

func TestMap(t *testing.T) {
	got := slices.Collect(Map(func(n int) int { return n * 2 })(slices.Values([]int{1, 2, 3})))
	if diff := cmp.Diff([]int{2, 4, 6}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestMap_Lazy(t *testing.T) {
	calls := 0
	m := Map(func(n int) int { calls++; return n })(slices.Values([]int{1, 2, 3}))
	if calls != 0 {
		t.Fatal("map ran before iteration")
	}
	for range m {
		break
	}
	if calls != 1 {
		t.Errorf("expected 1 call after taking one value, got %d", calls)
	}
}

func TestTryMap_StopsAtError(t *testing.T) {
	boom := stderrors.New("boom")
	m := TryMap(func(n int) (int, error) {
		if n == 2 {
			return 0, boom
		}
		return n, nil
	})
	got, err := TryCollect[int]()(m(slices.Values([]int{1, 2, 3})))
	if !stderrors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if diff := cmp.Diff([]int{1}, got); diff != "" {
		t.Errorf("already yielded values should survive (-want +got):\n%s", diff)
	}
}

func TestAMap_PreservesOrderAndRunsConcurrently(t *testing.T) {
	in := []int{5, 4, 3, 2, 1}
	got, err := AMap(barrier[int](t, len(in)))(context.Background(), slices.Values(in))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestAMap_FirstErrorAborts(t *testing.T) {
	boom := stderrors.New("boom")
	f := func(_ context.Context, n int) (int, error) {
		if n == 2 {
			return 0, boom
		}
		return n, nil
	}
	got, err := AMap(f)(context.Background(), slices.Values([]int{1, 2, 3}))
	if !stderrors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if got != nil {
		t.Errorf("expected no results on failure, got %v", got)
	}
}

func TestAMap_PanicBecomesError(t *testing.T) {
	f := func(_ context.Context, n int) (int, error) { panic("nope") }
	_, err := AMap(f)(context.Background(), slices.Values([]int{1}))
	if !errors.IsCode(err, errors.ErrCodePanic) {
		t.Errorf("expected PANIC, got %v", err)
	}
}

func TestAMapSafe(t *testing.T) {
	names := []string{"Alice", "Bob", "Charlie"}

	t.Run("all succeed", func(t *testing.T) {
		got, err := AMapSafe(emphasize)(context.Background(), slices.Values(names))
		if err != nil {
			t.Fatal(err)
		}
		vals, errs := Partition(got)
		if len(errs) != 0 {
			t.Fatalf("unexpected errors: %v", errs)
		}
		if diff := cmp.Diff([]string{"ALICE!", "BOB!", "CHARLIE!"}, vals); diff != "" {
			t.Errorf("(-want +got):\n%s", diff)
		}
	})

	t.Run("short names fail", func(t *testing.T) {
		errShort := stderrors.New("too short")
		f := func(_ context.Context, s string) (string, error) {
			if len(s) <= 3 {
				return "", errShort
			}
			return s, nil
		}
		got, err := AMapSafe(f)(context.Background(), slices.Values(names))
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 3 {
			t.Fatalf("expected 3 results, got %d", len(got))
		}
		if !got[0].OK() || got[0].Value != "Alice" {
			t.Errorf("slot 0: %+v", got[0])
		}
		if !stderrors.Is(got[1].Err, errShort) {
			t.Errorf("slot 1: expected errShort, got %+v", got[1])
		}
		if v, err := got[2].Unwrap(); err != nil || v != "Charlie" {
			t.Errorf("slot 2: (%q, %v)", v, err)
		}
	})
}

func TestFilter(t *testing.T) {
	got := slices.Collect(Filter(isEven)(slices.Values([]int{1, 2, 3, 4})))
	if diff := cmp.Diff([]int{2, 4}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestFilter_NilDropsFalsy(t *testing.T) {
	one, three := 1, 3
	ptrs := slices.Collect(Filter[*int](nil)(slices.Values([]*int{&one, nil, &three})))
	if len(ptrs) != 2 || *ptrs[0] != 1 || *ptrs[1] != 3 {
		t.Errorf("expected nil pointers dropped, got %v", ptrs)
	}

	strs := slices.Collect(Filter[string](nil)(slices.Values([]string{"a", "", "b"})))
	if diff := cmp.Diff([]string{"a", "b"}, strs); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestOfType(t *testing.T) {
	mixed := slices.Values([]any{1, "a", 2.5, "b", nil})
	got := slices.Collect(OfType[string, any]()(mixed))
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestAFilter(t *testing.T) {
	pred := fn.AsAsync(fn.Lift(isEven))
	got, err := AFilter(pred)(context.Background(), slices.Values([]int{1, 2, 3, 4}))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{2, 4}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestAFilter_Concurrent(t *testing.T) {
	in := []int{1, 2, 3}
	wait := barrier[int](t, len(in))
	pred := func(ctx context.Context, n int) (bool, error) {
		if _, err := wait(ctx, n); err != nil {
			return false, err
		}
		return n != 2, nil
	}
	got, err := AFilter(pred)(context.Background(), slices.Values(in))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{1, 3}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestAFilterSafe(t *testing.T) {
	boom := stderrors.New("boom")
	pred := func(_ context.Context, n int) (bool, error) {
		if n == 3 {
			return false, boom
		}
		return isEven(n), nil
	}
	got, err := AFilterSafe(pred)(context.Background(), slices.Values([]int{1, 2, 3, 4}))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 results, got %+v", got)
	}
	if got[0].Value != 2 || got[2].Value != 4 {
		t.Errorf("unexpected kept values %+v", got)
	}
	if got[1].Value != 3 || !stderrors.Is(got[1].Err, boom) {
		t.Errorf("expected failed item 3 with boom, got %+v", got[1])
	}
}

func TestCollect(t *testing.T) {
	yieldItems := func(n int) iter.Seq[int] {
		return func(yield func(int) bool) {
			for i := range n {
				if !yield(i) {
					return
				}
			}
		}
	}
	got := Collect(yieldItems)(3)
	if diff := cmp.Diff([]int{0, 1, 2}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestACollect(t *testing.T) {
	f := ACollect(func(n int) seq.AsyncIterator[int] { return seq.AsyncRange(0, n) })
	got, err := f(context.Background(), 3)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{0, 1, 2}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestReduce(t *testing.T) {
	sum := Reduce(func(acc, n int) int { return acc + n }, 0)
	if got := sum(slices.Values([]int{1, 2, 3})); got != 6 {
		t.Errorf("got %d, want 6", got)
	}
	if got := sum(slices.Values([]int{})); got != 0 {
		t.Errorf("empty: got %d, want initial", got)
	}
}

func TestAReduce_Sequential(t *testing.T) {
	var inFlight, maxInFlight atomic.Int32
	add := func(_ context.Context, acc, n int) (int, error) {
		cur := inFlight.Add(1)
		if cur > maxInFlight.Load() {
			maxInFlight.Store(cur)
		}
		time.Sleep(time.Millisecond)
		inFlight.Add(-1)
		return acc + n, nil
	}
	got, err := AReduce(add, 0)(context.Background(), slices.Values([]int{1, 2, 3}))
	if err != nil || got != 6 {
		t.Fatalf("got (%d, %v), want (6, nil)", got, err)
	}
	if maxInFlight.Load() != 1 {
		t.Errorf("expected sequential steps, saw %d in flight", maxInFlight.Load())
	}
}

func TestStarmap(t *testing.T) {
	add := func(args ...any) (int, error) { return args[0].(int) + args[1].(int), nil }
	pairs := slices.Values([]fn.Pair[int, int]{fn.PairOf(1, 2), fn.PairOf(3, 4)})
	got, err := TryCollect[int]()(Starmap[fn.Pair[int, int]](add)(pairs))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{3, 7}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestStarmap_NotTuple(t *testing.T) {
	add := func(args ...any) (int, error) { return 0, nil }
	_, err := TryCollect[int]()(Starmap[int](add)(slices.Values([]int{1, 2})))
	if !errors.IsCode(err, errors.ErrCodeShape) {
		t.Fatalf("expected SHAPE, got %v", err)
	}
	if !strings.Contains(err.Error(), "int") {
		t.Errorf("expected error to name the item type, got %q", err)
	}
}

func TestStarmap2(t *testing.T) {
	pairs := slices.Values([]fn.Pair[string, int]{fn.PairOf("a", 1), fn.PairOf("b", 2)})
	got := slices.Collect(Starmap2(strings.Repeat)(pairs))
	if diff := cmp.Diff([]string{"a", "bb"}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestAStarmap(t *testing.T) {
	mul := func(_ context.Context, args ...any) (int, error) { return args[0].(int) * args[1].(int), nil }
	pairs := slices.Values([]fn.Pair[int, int]{fn.PairOf(2, 3), fn.PairOf(4, 5)})
	got, err := AStarmap[fn.Pair[int, int]](mul)(context.Background(), pairs)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{6, 20}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestAStarmap_ShapeErrorBeforeAnyCall(t *testing.T) {
	var calls atomic.Int32
	f := func(_ context.Context, args ...any) (int, error) { calls.Add(1); return 0, nil }
	items := slices.Values([]any{fn.PairOf(1, 2), "nope"})
	_, err := AStarmap[any](f)(context.Background(), items)
	if !errors.IsCode(err, errors.ErrCodeShape) {
		t.Fatalf("expected SHAPE, got %v", err)
	}
	if calls.Load() != 0 {
		t.Errorf("expected no calls, got %d", calls.Load())
	}

	_, err = AStarmapSafe[any](f)(context.Background(), items)
	if !errors.IsCode(err, errors.ErrCodeShape) {
		t.Errorf("safe variant should still fail on shape, got %v", err)
	}
}

func TestAStarmapSafe(t *testing.T) {
	boom := stderrors.New("boom")
	div := func(_ context.Context, args ...any) (int, error) {
		b := args[1].(int)
		if b == 0 {
			return 0, boom
		}
		return args[0].(int) / b, nil
	}
	pairs := slices.Values([]fn.Pair[int, int]{fn.PairOf(6, 3), fn.PairOf(1, 0)})
	got, err := AStarmapSafe[fn.Pair[int, int]](div)(context.Background(), pairs)
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Value != 2 || !stderrors.Is(got[1].Err, boom) {
		t.Errorf("unexpected results %+v", got)
	}
}

func TestTap(t *testing.T) {
	var seen []int
	tap := Tap(func(n int) { seen = append(seen, n) })
	if got := tap(5); got != 5 {
		t.Errorf("tap changed value: %d", got)
	}
	if diff := cmp.Diff([]int{5}, seen); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestATap(t *testing.T) {
	boom := stderrors.New("boom")
	ok := ATap(func(context.Context, int) error { return nil })
	if v, err := ok(context.Background(), 1); err != nil || v != 1 {
		t.Errorf("got (%d, %v)", v, err)
	}
	failing := ATap(func(context.Context, int) error { return boom })
	if _, err := failing(context.Background(), 1); !stderrors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}

func TestTapEach(t *testing.T) {
	count := 0
	got := TapEach(func(int) { count++ })(slices.Values([]int{1, 2, 3}))
	if count != 3 {
		t.Errorf("expected 3 taps, got %d", count)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestValues(t *testing.T) {
	got := slices.Collect(Values[int]()([]int{1, 2}))
	if diff := cmp.Diff([]int{1, 2}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
