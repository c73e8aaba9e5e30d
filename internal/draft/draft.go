package draft

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ufjf-cead/StudioBookingService/internal/domain"
)

var (
	// ErrInvalidToken возвращается при повреждённом или подделанном токене
	ErrInvalidToken = errors.New("draft: invalid token")

	// ErrExpiredToken возвращается, когда срок действия черновика истёк
	ErrExpiredToken = errors.New("draft: token expired")
)

// Draft одобренный на предыдущем шаге диапазон дат для пространства
// Передаётся между шагами потока явно, вместо серверной сессии: тот же контроль
// целостности, но сервис остаётся stateless
type Draft struct {
	SpaceID  int64
	Start    time.Time
	End      time.Time
	IssuedAt time.Time
}

// Signer подписывает и проверяет черновики бронирования
type Signer struct {
	secret []byte
	ttl    time.Duration
}

// NewSigner создает Signer с секретом и сроком действия токенов
func NewSigner(secret string, ttl time.Duration) *Signer {
	return &Signer{secret: []byte(secret), ttl: ttl}
}

// Sign выдает токен для одобренного диапазона
// Формат: base64url(spaceID|start|end|issuedAtUnix) + "." + hex(HMAC-SHA256(payload))
func (s *Signer) Sign(spaceID int64, start, end time.Time, now time.Time) string {
	payload := fmt.Sprintf("%d|%s|%s|%d",
		spaceID,
		start.Format(domain.DateFormat),
		end.Format(domain.DateFormat),
		now.Unix(),
	)
	return base64.RawURLEncoding.EncodeToString([]byte(payload)) + "." + s.mac(payload)
}

// Verify проверяет подпись и срок действия токена и возвращает черновик
func (s *Signer) Verify(token string, now time.Time) (*Draft, error) {
	encoded, gotMAC, found := strings.Cut(token, ".")
	if !found {
		return nil, ErrInvalidToken
	}

	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidToken
	}
	payload := string(raw)

	if !hmac.Equal([]byte(s.mac(payload)), []byte(gotMAC)) {
		return nil, ErrInvalidToken
	}

	parts := strings.Split(payload, "|")
	if len(parts) != 4 {
		return nil, ErrInvalidToken
	}

	spaceID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	start, err := time.Parse(domain.DateFormat, parts[1])
	if err != nil {
		return nil, ErrInvalidToken
	}

	end, err := time.Parse(domain.DateFormat, parts[2])
	if err != nil {
		return nil, ErrInvalidToken
	}

	issuedUnix, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}
	issuedAt := time.Unix(issuedUnix, 0)

	if now.Sub(issuedAt) > s.ttl {
		return nil, ErrExpiredToken
	}

	return &Draft{
		SpaceID:  spaceID,
		Start:    start,
		End:      end,
		IssuedAt: issuedAt,
	}, nil
}

func (s *Signer) mac(payload string) string {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(payload))
	return hex.EncodeToString(h.Sum(nil))
}
