package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"spotbook/daterange"
	"spotbook/models"
)

type tables struct {
	users        map[uint]models.User
	spots        map[uint]models.Spot
	spotImages   map[uint]models.SpotImage
	bookings     map[uint]models.Booking
	reviews      map[uint]models.Review
	reviewImages map[uint]models.ReviewImage
	nextID       uint
}

func newTables() *tables {
	return &tables{
		users:        map[uint]models.User{},
		spots:        map[uint]models.Spot{},
		spotImages:   map[uint]models.SpotImage{},
		bookings:     map[uint]models.Booking{},
		reviews:      map[uint]models.Review{},
		reviewImages: map[uint]models.ReviewImage{},
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (t *tables) clone() *tables {
	return &tables{
		users:        cloneMap(t.users),
		spots:        cloneMap(t.spots),
		spotImages:   cloneMap(t.spotImages),
		bookings:     cloneMap(t.bookings),
		reviews:      cloneMap(t.reviews),
		reviewImages: cloneMap(t.reviewImages),
		nextID:       t.nextID,
	}
}

type memoryState struct {
	mu   sync.Mutex
	txMu sync.Mutex
	data *tables
	now  func() time.Time
}

// MemoryStore keeps records in maps. Writes and transactions are serialized
// on txMu, so a rollback only ever discards the transaction's own writes. It
// enforces the same uniqueness and overlap constraints as the database schema.
type MemoryStore struct {
	*memoryState
	inTx bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{memoryState: &memoryState{data: newTables(), now: time.Now}}
}

// lockWrite takes the locks a write needs and returns the matching unlock.
// Inside a transaction txMu is already held.
func (s *MemoryStore) lockWrite() func() {
	if !s.inTx {
		s.txMu.Lock()
	}
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		if !s.inTx {
			s.txMu.Unlock()
		}
	}
}

func (s *MemoryStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	if s.inTx {
		return fn(s)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.data.clone()
	s.mu.Unlock()

	if err := fn(&MemoryStore{memoryState: s.memoryState, inTx: true}); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// LockSpot is a plain read; Transaction already serializes writers.
func (s *MemoryStore) LockSpot(ctx context.Context, id uint) (*models.Spot, error) {
	return s.FindSpot(ctx, id)
}

func (s *MemoryStore) LockReview(ctx context.Context, id uint) (*models.Review, error) {
	return s.FindReview(ctx, id)
}

func (s *MemoryStore) id() uint {
	s.data.nextID++
	return s.data.nextID
}

func sortedValues[V any](m map[uint]V, keep func(V) bool) []V {
	keys := make([]uint, 0, len(m))
	for k, v := range m {
		if keep == nil || keep(v) {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	out := make([]V, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}

func idSet(ids []uint) map[uint]bool {
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// Users

func (s *MemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	defer s.lockWrite()()
	for _, u := range s.data.users {
		if strings.EqualFold(u.Email, user.Email) || u.Username == user.Username {
			return ErrDuplicate
		}
	}
	user.ID = s.id()
	user.CreatedAt = s.now()
	user.UpdatedAt = user.CreatedAt
	s.data.users[user.ID] = *user
	return nil
}

func (s *MemoryStore) FindUser(ctx context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.data.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemoryStore) FindUserByCredential(ctx context.Context, credential string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range sortedValues(s.data.users, nil) {
		if u.Email == credential || u.Username == credential {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) FindUsers(ctx context.Context, ids ...uint) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := idSet(ids)
	return sortedValues(s.data.users, func(u models.User) bool { return set[u.ID] }), nil
}

// Spots

func (s *MemoryStore) FindSpot(ctx context.Context, id uint) (*models.Spot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	spot, ok := s.data.spots[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &spot, nil
}

func within(v float64, lo, hi *float64) bool {
	if lo != nil && v < *lo {
		return false
	}
	if hi != nil && v > *hi {
		return false
	}
	return true
}

func (s *MemoryStore) ListSpots(ctx context.Context, f SpotFilter) ([]models.Spot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	spots := sortedValues(s.data.spots, func(sp models.Spot) bool {
		if f.OwnerID != nil && sp.OwnerID != *f.OwnerID {
			return false
		}
		return within(sp.Lat, f.MinLat, f.MaxLat) &&
			within(sp.Lng, f.MinLng, f.MaxLng) &&
			within(sp.Price, f.MinPrice, f.MaxPrice)
	})
	if f.Limit > 0 {
		if f.Offset >= len(spots) {
			return []models.Spot{}, nil
		}
		end := f.Offset + f.Limit
		if end > len(spots) {
			end = len(spots)
		}
		spots = spots[f.Offset:end]
	}
	return spots, nil
}

func (s *MemoryStore) CreateSpot(ctx context.Context, spot *models.Spot) error {
	defer s.lockWrite()()
	if _, ok := s.data.users[spot.OwnerID]; !ok {
		return ErrNotFound
	}
	spot.ID = s.id()
	spot.CreatedAt = s.now()
	spot.UpdatedAt = spot.CreatedAt
	s.data.spots[spot.ID] = *spot
	return nil
}

func (s *MemoryStore) UpdateSpot(ctx context.Context, spot *models.Spot) error {
	defer s.lockWrite()()
	if _, ok := s.data.spots[spot.ID]; !ok {
		return ErrNotFound
	}
	spot.UpdatedAt = s.now()
	s.data.spots[spot.ID] = *spot
	return nil
}

func (s *MemoryStore) DeleteSpot(ctx context.Context, id uint) error {
	defer s.lockWrite()()
	if _, ok := s.data.spots[id]; !ok {
		return ErrNotFound
	}
	delete(s.data.spots, id)
	for imgID, img := range s.data.spotImages {
		if img.SpotID == id {
			delete(s.data.spotImages, imgID)
		}
	}
	for bID, b := range s.data.bookings {
		if b.SpotID == id {
			delete(s.data.bookings, bID)
		}
	}
	for rID, r := range s.data.reviews {
		if r.SpotID == id {
			s.deleteReviewLocked(rID)
		}
	}
	return nil
}

// Spot images

func (s *MemoryStore) FindSpotImage(ctx context.Context, id uint) (*models.SpotImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	img, ok := s.data.spotImages[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &img, nil
}

func (s *MemoryStore) ListSpotImages(ctx context.Context, spotIDs ...uint) ([]models.SpotImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := idSet(spotIDs)
	return sortedValues(s.data.spotImages, func(img models.SpotImage) bool { return set[img.SpotID] }), nil
}

func (s *MemoryStore) CreateSpotImage(ctx context.Context, image *models.SpotImage) error {
	defer s.lockWrite()()
	if _, ok := s.data.spots[image.SpotID]; !ok {
		return ErrNotFound
	}
	image.ID = s.id()
	image.CreatedAt = s.now()
	image.UpdatedAt = image.CreatedAt
	s.data.spotImages[image.ID] = *image
	return nil
}

func (s *MemoryStore) DeleteSpotImage(ctx context.Context, id uint) error {
	defer s.lockWrite()()
	if _, ok := s.data.spotImages[id]; !ok {
		return ErrNotFound
	}
	delete(s.data.spotImages, id)
	return nil
}

// Bookings

func (s *MemoryStore) FindBooking(ctx context.Context, id uint) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.data.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

func sortByStart(bookings []models.Booking) []models.Booking {
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].Range().Start.Before(bookings[j].Range().Start)
	})
	return bookings
}

func (s *MemoryStore) ListBookingsBySpot(ctx context.Context, spotID uint) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortByStart(sortedValues(s.data.bookings, func(b models.Booking) bool { return b.SpotID == spotID })), nil
}

func (s *MemoryStore) ListBookingsByUser(ctx context.Context, userID uint) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortByStart(sortedValues(s.data.bookings, func(b models.Booking) bool { return b.UserID == userID })), nil
}

// overlapsLocked mirrors the bookings_no_overlap exclusion constraint.
func (s *MemoryStore) overlapsLocked(b *models.Booking) bool {
	for _, other := range s.data.bookings {
		if other.ID != b.ID && other.SpotID == b.SpotID && daterange.Overlaps(other.Range(), b.Range()) {
			return true
		}
	}
	return false
}

func (s *MemoryStore) CreateBooking(ctx context.Context, booking *models.Booking) error {
	defer s.lockWrite()()
	if _, ok := s.data.spots[booking.SpotID]; !ok {
		return ErrNotFound
	}
	if s.overlapsLocked(booking) {
		return ErrOverlap
	}
	booking.ID = s.id()
	booking.CreatedAt = s.now()
	booking.UpdatedAt = booking.CreatedAt
	s.data.bookings[booking.ID] = *booking
	return nil
}

func (s *MemoryStore) UpdateBooking(ctx context.Context, booking *models.Booking) error {
	defer s.lockWrite()()
	current, ok := s.data.bookings[booking.ID]
	if !ok {
		return ErrNotFound
	}
	if s.overlapsLocked(booking) {
		return ErrOverlap
	}
	current.StartDate = booking.StartDate
	current.EndDate = booking.EndDate
	current.UpdatedAt = s.now()
	s.data.bookings[booking.ID] = current
	*booking = current
	return nil
}

func (s *MemoryStore) DeleteBooking(ctx context.Context, id uint) error {
	defer s.lockWrite()()
	if _, ok := s.data.bookings[id]; !ok {
		return ErrNotFound
	}
	delete(s.data.bookings, id)
	return nil
}

// Reviews

func (s *MemoryStore) FindReview(ctx context.Context, id uint) (*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.data.reviews[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (s *MemoryStore) FindUserReview(ctx context.Context, spotID, userID uint) (*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.data.reviews {
		if r.SpotID == spotID && r.UserID == userID {
			return &r, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListReviewsBySpot(ctx context.Context, spotIDs ...uint) ([]models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := idSet(spotIDs)
	return sortedValues(s.data.reviews, func(r models.Review) bool { return set[r.SpotID] }), nil
}

func (s *MemoryStore) ListReviewsByUser(ctx context.Context, userID uint) ([]models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedValues(s.data.reviews, func(r models.Review) bool { return r.UserID == userID }), nil
}

func (s *MemoryStore) CreateReview(ctx context.Context, review *models.Review) error {
	defer s.lockWrite()()
	if _, ok := s.data.spots[review.SpotID]; !ok {
		return ErrNotFound
	}
	for _, r := range s.data.reviews {
		if r.SpotID == review.SpotID && r.UserID == review.UserID {
			return ErrDuplicate
		}
	}
	review.ID = s.id()
	review.CreatedAt = s.now()
	review.UpdatedAt = review.CreatedAt
	stored := *review
	stored.User = nil
	stored.ReviewImages = nil
	s.data.reviews[review.ID] = stored
	return nil
}

func (s *MemoryStore) UpdateReview(ctx context.Context, review *models.Review) error {
	defer s.lockWrite()()
	current, ok := s.data.reviews[review.ID]
	if !ok {
		return ErrNotFound
	}
	current.Review = review.Review
	current.Stars = review.Stars
	current.UpdatedAt = s.now()
	s.data.reviews[review.ID] = current
	review.UpdatedAt = current.UpdatedAt
	return nil
}

func (s *MemoryStore) deleteReviewLocked(id uint) {
	delete(s.data.reviews, id)
	for imgID, img := range s.data.reviewImages {
		if img.ReviewID == id {
			delete(s.data.reviewImages, imgID)
		}
	}
}

func (s *MemoryStore) DeleteReview(ctx context.Context, id uint) error {
	defer s.lockWrite()()
	if _, ok := s.data.reviews[id]; !ok {
		return ErrNotFound
	}
	s.deleteReviewLocked(id)
	return nil
}

// Review images

func (s *MemoryStore) FindReviewImage(ctx context.Context, id uint) (*models.ReviewImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	img, ok := s.data.reviewImages[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &img, nil
}

func (s *MemoryStore) ListReviewImages(ctx context.Context, reviewIDs ...uint) ([]models.ReviewImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := idSet(reviewIDs)
	return sortedValues(s.data.reviewImages, func(img models.ReviewImage) bool { return set[img.ReviewID] }), nil
}

func (s *MemoryStore) CountReviewImages(ctx context.Context, reviewID uint) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, img := range s.data.reviewImages {
		if img.ReviewID == reviewID {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) CreateReviewImage(ctx context.Context, image *models.ReviewImage) error {
	defer s.lockWrite()()
	if _, ok := s.data.reviews[image.ReviewID]; !ok {
		return ErrNotFound
	}
	image.ID = s.id()
	image.CreatedAt = s.now()
	image.UpdatedAt = image.CreatedAt
	s.data.reviewImages[image.ID] = *image
	return nil
}

func (s *MemoryStore) DeleteReviewImage(ctx context.Context, id uint) error {
	defer s.lockWrite()()
	if _, ok := s.data.reviewImages[id]; !ok {
		return ErrNotFound
	}
	delete(s.data.reviewImages, id)
	return nil
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*GormStore)(nil)
)
