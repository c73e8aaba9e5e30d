package signature

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/ufjf-cead/StudioBookingService/internal/domain"
)

// Input канонические поля закоммиченного бронирования, входящие в подпись
type Input struct {
	BookingID        int64
	RequesterID      int64
	TermText         string
	SpaceName        string
	BufferBeforeDays int
	BufferAfterDays  int
	Note             string
	Blocks           []domain.TimeBlock
}

// Generate строит детерминированный SHA-256 хеш бронирования
// Хеш служит для последующего обнаружения подмены (сверка повторно отправленного
// подтверждения с оригиналом); это не учётные данные и прав он не даёт
//
// Каноническая строка: пары "ключ=значение", отсортированные по ключу и
// соединённые "|". Блоки сортируются по (дата, начало), чтобы подпись не
// зависела от порядка вставки
func Generate(in Input) string {
	blocks := make([]domain.TimeBlock, len(in.Blocks))
	copy(blocks, in.Blocks)
	sort.Slice(blocks, func(i, j int) bool {
		if !blocks[i].Date.Equal(blocks[j].Date) {
			return blocks[i].Date.Before(blocks[j].Date)
		}
		return blocks[i].StartTime.IsBefore(blocks[j].StartTime)
	})

	blockParts := make([]string, len(blocks))
	for i, b := range blocks {
		blockParts[i] = fmt.Sprintf("%s %s-%s", b.Date.Format(domain.DateFormat), b.StartTime, b.EndTime)
	}

	fields := map[string]string{
		"id":            fmt.Sprintf("%d", in.BookingID),
		"requester":     fmt.Sprintf("%d", in.RequesterID),
		"term_text":     strings.TrimSpace(in.TermText),
		"space_name":    strings.TrimSpace(in.SpaceName),
		"buffer_before": fmt.Sprintf("%d", in.BufferBeforeDays),
		"buffer_after":  fmt.Sprintf("%d", in.BufferAfterDays),
		"note":          strings.TrimSpace(in.Note),
		"blocks":        strings.Join(blockParts, ","),
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + fields[k]
	}

	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}
