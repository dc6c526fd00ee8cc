package stream

import "context"

// Map returns a stream applying f to every item of s.
func Map[T, U any](s *Stream[T], f func(T) U) *Stream[U] {
	return MapErr(s, func(item T) (U, error) {
		return f(item), nil
	})
}

// MapErr returns a stream applying the fallible f to every item of s. The first
// failure of f fails the returned stream.
func MapErr[T, U any](s *Stream[T], f func(T) (U, error)) *Stream[U] {
	return New(func(ctx context.Context) (U, bool, error) {
		var zero U
		item, ok, err := s.Next(ctx)
		if err != nil || !ok {
			return zero, false, err
		}

		mapped, err := f(item)
		if err != nil {
			return zero, false, err
		}
		return mapped, true, nil
	})
}

// FlatMap returns a stream of the concatenation of f applied to every item of
// s, preserving the order of s and the order within each result of f.
func FlatMap[T, U any](s *Stream[T], f func(T) []U) *Stream[U] {
	var buffer []U
	return New(func(ctx context.Context) (U, bool, error) {
		var zero U
		for len(buffer) == 0 {
			item, ok, err := s.Next(ctx)
			if err != nil || !ok {
				return zero, false, err
			}
			buffer = f(item)
		}

		next := buffer[0]
		buffer = buffer[1:]
		return next, true, nil
	})
}

// FlatMapStream returns a stream of the concatenation of the streams produced
// by applying f to every item of s.
func FlatMapStream[T, U any](s *Stream[T], f func(T) *Stream[U]) *Stream[U] {
	var current *Stream[U]
	return New(func(ctx context.Context) (U, bool, error) {
		var zero U
		for {
			if current != nil {
				next, ok, err := current.Next(ctx)
				if err != nil {
					return zero, false, err
				}
				if ok {
					return next, true, nil
				}
				current = nil
			}

			item, ok, err := s.Next(ctx)
			if err != nil || !ok {
				return zero, false, err
			}
			current = f(item)
		}
	})
}

// Filter returns a stream of the items of s satisfying keep.
func Filter[T any](s *Stream[T], keep func(T) bool) *Stream[T] {
	return New(func(ctx context.Context) (T, bool, error) {
		for {
			item, ok, err := s.Next(ctx)
			if err != nil || !ok {
				return item, false, err
			}
			if keep(item) {
				return item, true, nil
			}
		}
	})
}

// Concat returns a stream yielding every item of each given stream in turn.
func Concat[T any](streams ...*Stream[T]) *Stream[T] {
	return FlatMapStream(FromSlice(streams), func(s *Stream[T]) *Stream[T] {
		return s
	})
}
