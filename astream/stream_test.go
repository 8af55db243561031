package astream

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/kbukum/amalfi/errors"
	"github.com/kbukum/amalfi/fn"
	"github.com/kbukum/amalfi/ops"
	"github.com/kbukum/amalfi/pipeline"
	"github.com/kbukum/amalfi/seq"
	"github.com/kbukum/amalfi/stream"
)

func addOne(n int) int     { return n + 1 }
func isEven(n int) bool    { return n%2 == 0 }
func lessThan3(n int) bool { return n < 3 }

func asyncAdd(ctx context.Context, acc, n int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return acc + n, nil
}

func waitAndDouble(ctx context.Context, n int) (int, error) {
	select {
	case <-time.After(time.Millisecond):
		return n * 2, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func mustCollect[T any](t *testing.T, s *Stream[T]) []T {
	t.Helper()
	out, err := s.Collect(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return out
}

type counting struct {
	seq.AsyncIterator[int]
	pulled int
}

func (c *counting) Next(ctx context.Context) (int, bool, error) {
	v, ok, err := c.AsyncIterator.Next(ctx)
	if ok {
		c.pulled++
	}
	return v, ok, err
}

func TestMap_AcceptsEveryKind(t *testing.T) {
	s := Of(1, 2, 3)
	s = Map(s, fn.Pure(addOne))
	s = Map(s, fn.Async(waitAndDouble))
	s = Map(s, fn.Sync(func(n int) (int, error) { return n - 1, nil }))
	got := mustCollect(t, s)
	if diff := cmp.Diff([]int{3, 5, 7}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestMap_ErrorEndsStream(t *testing.T) {
	boom := stderrors.New("boom")
	s := Map(Of(1, 2, 3), fn.Sync(func(n int) (int, error) {
		if n == 2 {
			return 0, boom
		}
		return n, nil
	}))
	got, err := s.Collect(context.Background())
	if !stderrors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if diff := cmp.Diff([]int{1}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFilter(t *testing.T) {
	got := mustCollect(t, Of(1, 2, 3, 4).Filter(fn.Pure(isEven)))
	if diff := cmp.Diff([]int{2, 4}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFilter_ZeroStepDropsNil(t *testing.T) {
	var zero fn.Step[any, bool]
	got := mustCollect(t, Of[any](1, nil, "a", nil).Filter(zero))
	if diff := cmp.Diff([]any{1, "a"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestTake_DoesNotOverPull(t *testing.T) {
	src := &counting{AsyncIterator: seq.AsyncFromSlice([]int{1, 2, 3, 4})}
	got := mustCollect(t, From[int](src).Take(3))
	if len(got) != 3 || src.pulled != 3 {
		t.Errorf("expected 3 values from 3 pulls, got %v after %d pulls", got, src.pulled)
	}
}

func TestTakeWhile(t *testing.T) {
	got := mustCollect(t, Of(1, 2, 3, 1).TakeWhile(fn.Pure(lessThan3)))
	if diff := cmp.Diff([]int{1, 2}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDefault(t *testing.T) {
	if diff := cmp.Diff([]int{9}, mustCollect(t, FromSlice([]int{}).Default(9))); diff != "" {
		t.Errorf("empty mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1}, mustCollect(t, Of(1).Default(9))); diff != "" {
		t.Errorf("passthrough mismatch (-want +got):\n%s", diff)
	}
}

func TestTap_ErrorEndsStream(t *testing.T) {
	boom := stderrors.New("boom")
	var seen []int
	s := Of(1, 2, 3).Tap(func(_ context.Context, n int) error {
		if n == 3 {
			return boom
		}
		seen = append(seen, n)
		return nil
	})
	got, err := s.Collect(context.Background())
	if !stderrors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if diff := cmp.Diff(seen, got); diff != "" {
		t.Errorf("tap saw different values (-seen +got):\n%s", diff)
	}
}

func TestReduce(t *testing.T) {
	got := mustCollect(t, Reduce(From(seq.AsyncRange(1, 4)), asyncAdd, 0))
	if diff := cmp.Diff([]int{6}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestStarmap(t *testing.T) {
	s := Starmap(Of(fn.PairOf(1, 2), fn.PairOf(3, 4)), func(_ context.Context, args ...any) (int, error) {
		return args[0].(int) + args[1].(int), nil
	})
	if diff := cmp.Diff([]int{3, 7}, mustCollect(t, s)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	bad := Starmap(Of(1, 2), func(context.Context, ...any) (int, error) { return 0, nil })
	if _, err := bad.Collect(context.Background()); !errors.IsCode(err, errors.ErrCodeShape) {
		t.Errorf("expected SHAPE error, got %v", err)
	}
}

func TestChunk(t *testing.T) {
	got := mustCollect(t, Chunk(Of(1, 2, 3, 4, 5), 2))
	if diff := cmp.Diff([][]int{{1, 2}, {3, 4}, {5}}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	all := mustCollect(t, ChunkAll(Of(1, 2, 3)))
	if diff := cmp.Diff([][]int{{1, 2, 3}}, all); diff != "" {
		t.Errorf("chunk all mismatch (-want +got):\n%s", diff)
	}
}

func TestChunk_InvalidSizePanics(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.IsCode(err, errors.ErrCodeMisuse) {
			t.Errorf("expected MISUSE panic, got %v", r)
		}
	}()
	Chunk(Of(1), -1)
}

func TestMapZipAndZipWith(t *testing.T) {
	zipped := mustCollect(t, MapZip(Of(1, 2), fn.Async(waitAndDouble)))
	want := []fn.Pair[int, int]{fn.PairOf(1, 2), fn.PairOf(2, 4)}
	if diff := cmp.Diff(want, zipped); diff != "" {
		t.Errorf("map zip mismatch (-want +got):\n%s", diff)
	}

	pairs := mustCollect(t, ZipWith(Of("a", "b", "c"), Of(1, 2)))
	wantPairs := []fn.Pair[string, int]{fn.PairOf("a", 1), fn.PairOf("b", 2)}
	if diff := cmp.Diff(wantPairs, pairs); diff != "" {
		t.Errorf("zip mismatch (-want +got):\n%s", diff)
	}
}

func TestAwait(t *testing.T) {
	ctx := context.Background()
	futures := Of(
		fn.Go(ctx, waitAndDouble, 1),
		fn.Ready(5),
		fn.Go(ctx, waitAndDouble, 3),
	)
	got := mustCollect(t, Await(futures))
	if diff := cmp.Diff([]int{2, 5, 6}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestCollect_HonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := Map(Of(1, 2, 3), fn.Pure(func(n int) int {
		if n == 1 {
			cancel()
		}
		return n
	}))
	got, err := s.Collect(ctx)
	if !stderrors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if diff := cmp.Diff([]int{1}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFromChannel(t *testing.T) {
	ch := make(chan int, 3)
	ch <- 1
	ch <- 2
	ch <- 3
	close(ch)
	got := mustCollect(t, Map(FromChannel(ch), fn.Pure(addOne)))
	if diff := cmp.Diff([]int{2, 3, 4}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFromStream(t *testing.T) {
	s := FromStream(stream.Of(1, 2, 3))
	got := mustCollect(t, Map(s, fn.Async(waitAndDouble)))
	if diff := cmp.Diff([]int{2, 4, 6}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSinglePass(t *testing.T) {
	s := FromSeq(func(yield func(int) bool) {
		for _, v := range []int{1, 2} {
			if !yield(v) {
				return
			}
		}
	})
	if first := mustCollect(t, s); len(first) != 2 {
		t.Fatalf("expected 2 values, got %v", first)
	}
	if second := mustCollect(t, s); len(second) != 0 {
		t.Errorf("expected consumed stream to be empty, got %v", second)
	}
}

func TestAll(t *testing.T) {
	var got []int
	for v, err := range Of(1, 2).All(context.Background()) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got = append(got, v)
	}
	if diff := cmp.Diff([]int{1, 2}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectIntoAndPipes(t *testing.T) {
	ctx := context.Background()
	n, err := CollectInto(ctx, Of(1, 2, 3), func(xs []int) int { return len(xs) })
	if err != nil || n != 3 {
		t.Errorf("expected 3, got %d (err %v)", n, err)
	}

	p, err := Of(1, 2, 3).ToPipe(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	evens, err := pipeline.Then(pipeline.Then(p, ops.Filter(isEven)), ops.ToSlice[int]()).Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]int{2}, evens); diff != "" {
		t.Errorf("pipe mismatch (-want +got):\n%s", diff)
	}

	ap, err := Of(1, 2, 3).ToAPipe(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doubled, err := pipeline.AwaitAsync(ap, ops.AMap(waitAndDouble)).Run(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]int{2, 4, 6}, doubled); diff != "" {
		t.Errorf("apipe mismatch (-want +got):\n%s", diff)
	}
}

var errFlaky = stderrors.New("flaky")

// flaky yields 1, then an error, then 3. It does not stop after failing.
type flaky struct{ n int }

func (f *flaky) Next(context.Context) (int, bool, error) {
	f.n++
	switch f.n {
	case 1:
		return 1, true, nil
	case 2:
		return 0, false, errFlaky
	case 3:
		return 3, true, nil
	}
	return 0, false, nil
}

func (f *flaky) Close() error { return nil }

func TestNext_DoneAfterError(t *testing.T) {
	failOn2 := fn.Sync(func(n int) (int, error) {
		if n == 2 {
			return 0, errFlaky
		}
		return n, nil
	})
	sumPair := func(_ context.Context, args ...any) (int, error) { return args[0].(int) + args[1].(int), nil }
	always := fn.Pure(func(int) bool { return true })
	failingPred := fn.Sync(func(n int) (bool, error) {
		if n == 2 {
			return false, errFlaky
		}
		return true, nil
	})

	tests := []struct {
		name string
		s    *Stream[int]
	}{
		{"map", Map(Of(1, 2, 3), failOn2)},
		{"starmap", Starmap(Of[any](fn.PairOf(1, 2), 5, fn.PairOf(3, 4)), sumPair)},
		{"map_upstream", Map(From[int](&flaky{}), fn.Pure(addOne))},
		{"filter", From[int](&flaky{}).Filter(always)},
		{"filter_pred", Of(1, 2, 3).Filter(failingPred)},
		{"take", From[int](&flaky{}).Take(5)},
		{"take_while", From[int](&flaky{}).TakeWhile(always)},
		{"take_while_pred", Of(1, 2, 3).TakeWhile(failingPred)},
		{"default", From[int](&flaky{}).Default(9)},
	}
	ctx := context.Background()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok, err := tt.s.Next(ctx); !ok || err != nil {
				t.Fatalf("first Next: ok=%v err=%v", ok, err)
			}
			if _, ok, err := tt.s.Next(ctx); ok || err == nil {
				t.Fatalf("second Next: expected an error, got ok=%v err=%v", ok, err)
			}
			for range 2 {
				if v, ok, err := tt.s.Next(ctx); ok || err != nil {
					t.Errorf("Next after error: got (%d, %v, %v), want (0, false, nil)", v, ok, err)
				}
			}
		})
	}
}

func TestFilter_IdentityIsZeroStep(t *testing.T) {
	got := mustCollect(t, Of(true, false, true).Filter(fn.Identity[bool]()))
	if diff := cmp.Diff([]bool{true, false, true}, got); diff != "" {
		t.Errorf("identity predicate should only drop nil (-want +got):\n%s", diff)
	}
	explicit := mustCollect(t, Of(true, false, true).Filter(fn.Pure(func(b bool) bool { return b })))
	if diff := cmp.Diff([]bool{true, true}, explicit); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
