// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package storage

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"

	"github.com/poiesic/catalogrank/core"
)

var (
	// ReviewMUS serializes core.Review values.
	ReviewMUS = reviewMUS{}

	// ItemMUS serializes core.Item values, reviews included.
	ItemMUS = itemMUS{}
)

var (
	_ mus.Serializer[core.Review] = ReviewMUS
	_ mus.Serializer[core.Item]   = ItemMUS
)

type reviewMUS struct{}

// Dates are stored as Unix microseconds, with 0 standing for "no date".
func dateMicros(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMicro()
}

func (reviewMUS) Size(r core.Review) (size int) {
	size += ord.String.Size(r.Author)
	size += varint.Float64.Size(r.Rating)
	size += ord.String.Size(r.Title)
	size += ord.String.Size(r.Body)
	return size + varint.Int64.Size(dateMicros(r.Date))
}

func (reviewMUS) Marshal(r core.Review, bs []byte) (n int) {
	n += ord.String.Marshal(r.Author, bs[n:])
	n += varint.Float64.Marshal(r.Rating, bs[n:])
	n += ord.String.Marshal(r.Title, bs[n:])
	n += ord.String.Marshal(r.Body, bs[n:])
	return n + varint.Int64.Marshal(dateMicros(r.Date), bs[n:])
}

func (reviewMUS) Unmarshal(bs []byte) (r core.Review, n int, err error) {
	var n1 int
	if r.Author, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if r.Rating, n1, err = varint.Float64.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if r.Title, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if r.Body, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	var micros int64
	if micros, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if micros != 0 {
		r.Date = time.UnixMicro(micros).UTC()
	}
	return
}

func (s reviewMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type itemMUS struct{}

func (itemMUS) Size(it core.Item) (size int) {
	size += ord.String.Size(it.ID)
	size += ord.String.Size(it.Title)
	size += varint.Float64.Size(it.Price)
	size += ord.String.Size(it.Link)
	size += ord.String.Size(it.ImageURL)
	size += ord.String.Size(it.Description)
	size += ord.String.Size(it.Category)
	size += varint.Int.Size(len(it.Reviews))
	for _, r := range it.Reviews {
		size += ReviewMUS.Size(r)
	}
	size += varint.Float64.Size(it.AvgRating)
	return size + varint.Int.Size(it.ReviewCount)
}

func (itemMUS) Marshal(it core.Item, bs []byte) (n int) {
	n += ord.String.Marshal(it.ID, bs[n:])
	n += ord.String.Marshal(it.Title, bs[n:])
	n += varint.Float64.Marshal(it.Price, bs[n:])
	n += ord.String.Marshal(it.Link, bs[n:])
	n += ord.String.Marshal(it.ImageURL, bs[n:])
	n += ord.String.Marshal(it.Description, bs[n:])
	n += ord.String.Marshal(it.Category, bs[n:])
	n += varint.Int.Marshal(len(it.Reviews), bs[n:])
	for _, r := range it.Reviews {
		n += ReviewMUS.Marshal(r, bs[n:])
	}
	n += varint.Float64.Marshal(it.AvgRating, bs[n:])
	return n + varint.Int.Marshal(it.ReviewCount, bs[n:])
}

func (itemMUS) Unmarshal(bs []byte) (it core.Item, n int, err error) {
	var n1 int
	fields := []*string{&it.ID, &it.Title}
	for _, p := range fields {
		if *p, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
			return
		}
		n += n1
	}
	if it.Price, n1, err = varint.Float64.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	fields = []*string{&it.Link, &it.ImageURL, &it.Description, &it.Category}
	for _, p := range fields {
		if *p, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
			return
		}
		n += n1
	}

	var count int
	if count, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	// Every review takes at least one byte per field.
	if count < 0 || count > len(bs)-n {
		err = ErrTruncatedData
		return
	}
	if count > 0 {
		it.Reviews = make([]core.Review, count)
		for i := range it.Reviews {
			if it.Reviews[i], n1, err = ReviewMUS.Unmarshal(bs[n:]); err != nil {
				return
			}
			n += n1
		}
	}

	if it.AvgRating, n1, err = varint.Float64.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if it.ReviewCount, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	return
}

func (s itemMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

// MarshalItem serializes an Item to bytes.
func MarshalItem(item *core.Item) []byte {
	buf := make([]byte, ItemMUS.Size(*item))
	ItemMUS.Marshal(*item, buf)
	return buf
}

// UnmarshalItem deserializes an Item from bytes.
func UnmarshalItem(data []byte) (*core.Item, error) {
	item, _, err := ItemMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &item, nil
}

// MarshalString serializes a string to bytes.
func MarshalString(s string) []byte {
	buf := make([]byte, ord.String.Size(s))
	ord.String.Marshal(s, buf)
	return buf
}

// UnmarshalString deserializes a string from bytes.
func UnmarshalString(data []byte) (string, error) {
	s, _, err := ord.String.Unmarshal(data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return s, nil
}
