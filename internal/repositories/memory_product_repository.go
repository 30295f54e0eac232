package repositories

import (
	"sync"
	"time"

	"thescent/internal/models"
)

type memoryScentLink struct {
	profileID int
	intensity int
}

type memoryMoodLink struct {
	moodID        int
	effectiveness int
}

type memoryProductRepository struct {
	mu          sync.RWMutex
	nextID      int
	nextImageID int
	products    map[int]*models.Product
	ingredients map[int][]string
	benefits    map[int][]string
	images      map[int][]*models.ProductImage
	scentLinks  map[int][]memoryScentLink
	moodLinks   map[int][]memoryMoodLink

	// Link targets, resolved when serving product details.
	profiles ScentRepository
}

// NewMemoryProductRepository builds the in-memory product backend. The scent
// repository is needed to hydrate profile and mood links.
func NewMemoryProductRepository(scents ScentRepository) ProductRepository {
	return &memoryProductRepository{
		nextID:      1,
		nextImageID: 1,
		products:    make(map[int]*models.Product),
		ingredients: make(map[int][]string),
		benefits:    make(map[int][]string),
		images:      make(map[int][]*models.ProductImage),
		scentLinks:  make(map[int][]memoryScentLink),
		moodLinks:   make(map[int][]memoryMoodLink),
		profiles:    scents,
	}
}

func (r *memoryProductRepository) Create(p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.products {
		if existing.Slug == p.Slug || existing.SKU == p.SKU {
			return ErrDuplicate
		}
	}
	p.ID = r.nextID
	r.nextID++
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memoryProductRepository) ordered() []*models.Product {
	res := make([]*models.Product, 0, len(r.products))
	for id := 1; id < r.nextID; id++ {
		if p, ok := r.products[id]; ok {
			cp := *p
			res = append(res, &cp)
		}
	}
	return res
}

func (r *memoryProductRepository) List(limit, offset int) ([]*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := r.ordered()
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *memoryProductRepository) ListFeatured() ([]*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var res []*models.Product
	for _, p := range r.ordered() {
		if p.Featured {
			res = append(res, p)
		}
	}
	return res, nil
}

func (r *memoryProductRepository) ListByCategory(categoryID int) ([]*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var res []*models.Product
	for _, p := range r.ordered() {
		if p.CategoryID == categoryID {
			res = append(res, p)
		}
	}
	return res, nil
}

func (r *memoryProductRepository) GetByID(id int) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memoryProductRepository) GetBySlug(slug string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.products {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryProductRepository) UpdateRatingStats(id, reviewCount int, averageRating float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return ErrNotFound
	}
	p.ReviewCount = reviewCount
	p.AverageRating = averageRating
	p.UpdatedAt = time.Now()
	return nil
}

func (r *memoryProductRepository) Ingredients(productID int) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.ingredients[productID]...), nil
}

func (r *memoryProductRepository) SetIngredients(productID int, ingredients []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ingredients[productID] = append([]string(nil), ingredients...)
	return nil
}

func (r *memoryProductRepository) Benefits(productID int) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.benefits[productID]...), nil
}

func (r *memoryProductRepository) SetBenefits(productID int, benefits []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.benefits[productID] = append([]string(nil), benefits...)
	return nil
}

func (r *memoryProductRepository) Images(productID int) ([]*models.ProductImage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var res []*models.ProductImage
	for _, img := range r.images[productID] {
		cp := *img
		res = append(res, &cp)
	}
	return res, nil
}

func (r *memoryProductRepository) AddImage(img *models.ProductImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	img.ID = r.nextImageID
	r.nextImageID++
	cp := *img
	r.images[img.ProductID] = append(r.images[img.ProductID], &cp)
	return nil
}

func (r *memoryProductRepository) ScentProfiles(productID int) ([]*models.ProductScentProfile, error) {
	r.mu.RLock()
	links := append([]memoryScentLink(nil), r.scentLinks[productID]...)
	r.mu.RUnlock()

	var res []*models.ProductScentProfile
	for _, link := range links {
		sp, err := r.profiles.GetScentProfile(link.profileID)
		if err != nil {
			continue
		}
		res = append(res, &models.ProductScentProfile{ScentProfile: *sp, Intensity: link.intensity})
	}
	return res, nil
}

func (r *memoryProductRepository) LinkScentProfile(productID, profileID, intensity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scentLinks[productID] = append(r.scentLinks[productID], memoryScentLink{profileID: profileID, intensity: intensity})
	return nil
}

func (r *memoryProductRepository) Moods(productID int) ([]*models.ProductMood, error) {
	r.mu.RLock()
	links := append([]memoryMoodLink(nil), r.moodLinks[productID]...)
	r.mu.RUnlock()

	var res []*models.ProductMood
	for _, link := range links {
		m, err := r.profiles.GetMood(link.moodID)
		if err != nil {
			continue
		}
		res = append(res, &models.ProductMood{Mood: *m, Effectiveness: link.effectiveness})
	}
	return res, nil
}

func (r *memoryProductRepository) LinkMood(productID, moodID, effectiveness int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.moodLinks[productID] = append(r.moodLinks[productID], memoryMoodLink{moodID: moodID, effectiveness: effectiveness})
	return nil
}

func (r *memoryProductRepository) ScoreByMoods(moodIDs []int) (map[int]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wanted := make(map[int]bool, len(moodIDs))
	for _, id := range moodIDs {
		wanted[id] = true
	}
	res := make(map[int]int)
	for productID, links := range r.moodLinks {
		for _, link := range links {
			if wanted[link.moodID] {
				res[productID] += link.effectiveness
			}
		}
	}
	return res, nil
}

func (r *memoryProductRepository) ScoreByScentProfiles(profileIDs []int) (map[int]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wanted := make(map[int]bool, len(profileIDs))
	for _, id := range profileIDs {
		wanted[id] = true
	}
	res := make(map[int]int)
	for productID, links := range r.scentLinks {
		for _, link := range links {
			if wanted[link.profileID] {
				res[productID] += link.intensity
			}
		}
	}
	return res, nil
}
