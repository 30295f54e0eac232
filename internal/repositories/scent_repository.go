package repositories

import (
	"database/sql"
	"sync"
	"time"

	"thescent/internal/models"
)

// ScentRepository serves the quiz reference data: scent profiles, moods and
// the lifestyle carousel entries.
type ScentRepository interface {
	ListScentProfiles() ([]*models.ScentProfile, error)
	GetScentProfile(id int) (*models.ScentProfile, error)
	CreateScentProfile(sp *models.ScentProfile) error
	ListMoods() ([]*models.Mood, error)
	GetMood(id int) (*models.Mood, error)
	CreateMood(m *models.Mood) error
	ListLifestyleItems() ([]*models.LifestyleItem, error)
	CreateLifestyleItem(item *models.LifestyleItem) error
}

type scentRepository struct {
	DB *sql.DB
}

func NewScentRepository(db *sql.DB) ScentRepository {
	return &scentRepository{DB: db}
}

func (r *scentRepository) ListScentProfiles() ([]*models.ScentProfile, error) {
	rows, err := r.DB.Query(`SELECT id, name, description, COALESCE(icon_class,'') FROM scent_profiles ORDER BY id`)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var res []*models.ScentProfile
	for rows.Next() {
		sp := &models.ScentProfile{}
		if err := rows.Scan(&sp.ID, &sp.Name, &sp.Description, &sp.IconClass); err != nil {
			return nil, err
		}
		res = append(res, sp)
	}
	return res, rows.Err()
}

func (r *scentRepository) GetScentProfile(id int) (*models.ScentProfile, error) {
	sp := &models.ScentProfile{}
	err := r.DB.QueryRow(`SELECT id, name, description, COALESCE(icon_class,'') FROM scent_profiles WHERE id=$1`, id).
		Scan(&sp.ID, &sp.Name, &sp.Description, &sp.IconClass)
	if err != nil {
		return nil, translate(err)
	}
	return sp, nil
}

func (r *scentRepository) CreateScentProfile(sp *models.ScentProfile) error {
	const q = `INSERT INTO scent_profiles (name, description, icon_class) VALUES ($1,$2,$3) RETURNING id`
	return translate(r.DB.QueryRow(q, sp.Name, sp.Description, sp.IconClass).Scan(&sp.ID))
}

func (r *scentRepository) ListMoods() ([]*models.Mood, error) {
	rows, err := r.DB.Query(`SELECT id, name, COALESCE(description,''), COALESCE(icon_class,'') FROM moods ORDER BY id`)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var res []*models.Mood
	for rows.Next() {
		m := &models.Mood{}
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.IconClass); err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	return res, rows.Err()
}

func (r *scentRepository) GetMood(id int) (*models.Mood, error) {
	m := &models.Mood{}
	err := r.DB.QueryRow(`SELECT id, name, COALESCE(description,''), COALESCE(icon_class,'') FROM moods WHERE id=$1`, id).
		Scan(&m.ID, &m.Name, &m.Description, &m.IconClass)
	if err != nil {
		return nil, translate(err)
	}
	return m, nil
}

func (r *scentRepository) CreateMood(m *models.Mood) error {
	const q = `INSERT INTO moods (name, description, icon_class) VALUES ($1,$2,$3) RETURNING id`
	return translate(r.DB.QueryRow(q, m.Name, m.Description, m.IconClass).Scan(&m.ID))
}

func (r *scentRepository) ListLifestyleItems() ([]*models.LifestyleItem, error) {
	const q = `SELECT id, title, description, image_url, link, created_at, updated_at FROM lifestyle_items ORDER BY id`
	rows, err := r.DB.Query(q)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var res []*models.LifestyleItem
	for rows.Next() {
		item := &models.LifestyleItem{}
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.ImageURL, &item.Link, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		res = append(res, item)
	}
	return res, rows.Err()
}

func (r *scentRepository) CreateLifestyleItem(item *models.LifestyleItem) error {
	const q = `
		INSERT INTO lifestyle_items (title, description, image_url, link)
		VALUES ($1,$2,$3,$4)
		RETURNING id, created_at, updated_at
	`
	return translate(r.DB.QueryRow(q, item.Title, item.Description, item.ImageURL, item.Link).
		Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt))
}

type memoryScentRepository struct {
	mu            sync.RWMutex
	nextProfileID int
	nextMoodID    int
	nextItemID    int
	profiles      map[int]*models.ScentProfile
	moods         map[int]*models.Mood
	items         map[int]*models.LifestyleItem
}

func NewMemoryScentRepository() ScentRepository {
	return &memoryScentRepository{
		nextProfileID: 1,
		nextMoodID:    1,
		nextItemID:    1,
		profiles:      make(map[int]*models.ScentProfile),
		moods:         make(map[int]*models.Mood),
		items:         make(map[int]*models.LifestyleItem),
	}
}

func (r *memoryScentRepository) ListScentProfiles() ([]*models.ScentProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := make([]*models.ScentProfile, 0, len(r.profiles))
	for id := 1; id < r.nextProfileID; id++ {
		if sp, ok := r.profiles[id]; ok {
			cp := *sp
			res = append(res, &cp)
		}
	}
	return res, nil
}

func (r *memoryScentRepository) GetScentProfile(id int) (*models.ScentProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sp, ok := r.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *sp
	return &cp, nil
}

func (r *memoryScentRepository) CreateScentProfile(sp *models.ScentProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sp.ID = r.nextProfileID
	r.nextProfileID++
	cp := *sp
	r.profiles[sp.ID] = &cp
	return nil
}

func (r *memoryScentRepository) ListMoods() ([]*models.Mood, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := make([]*models.Mood, 0, len(r.moods))
	for id := 1; id < r.nextMoodID; id++ {
		if m, ok := r.moods[id]; ok {
			cp := *m
			res = append(res, &cp)
		}
	}
	return res, nil
}

func (r *memoryScentRepository) GetMood(id int) (*models.Mood, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.moods[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *memoryScentRepository) CreateMood(m *models.Mood) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = r.nextMoodID
	r.nextMoodID++
	cp := *m
	r.moods[m.ID] = &cp
	return nil
}

func (r *memoryScentRepository) ListLifestyleItems() ([]*models.LifestyleItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := make([]*models.LifestyleItem, 0, len(r.items))
	for id := 1; id < r.nextItemID; id++ {
		if item, ok := r.items[id]; ok {
			cp := *item
			res = append(res, &cp)
		}
	}
	return res, nil
}

func (r *memoryScentRepository) CreateLifestyleItem(item *models.LifestyleItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item.ID = r.nextItemID
	r.nextItemID++
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now
	cp := *item
	r.items[item.ID] = &cp
	return nil
}
