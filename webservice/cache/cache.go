package cache

import (
	"fmt"
	"sync"
	"time"
)

// QueryCache кэш результатов запросов к таблице расписания с тремя
// уровнями приоритета. Новые результаты попадают на третий уровень,
// часто запрашиваемые поднимаются выше: после трех обращений на второй,
// после пяти на первый. Вытеснение идет с холодных уровней.
type QueryCache struct {
	mu        sync.Mutex
	level1    map[string]*queryResult // горячие выборки
	level2    map[string]*queryResult
	level3    map[string]*queryResult
	maxSize   int
	hits      int
	misses    int
	evictions int
}

type queryResult struct {
	value       interface{}
	createdAt   time.Time
	lastAccess  time.Time
	accessCount int
}

// Пороги продвижения между уровнями
const (
	promoteToWarm = 3
	promoteToHot  = 5
)

// Stats статистика кэша для эндпоинта мониторинга
type Stats struct {
	Level1Size int     `json:"level1_size"`
	Level2Size int     `json:"level2_size"`
	Level3Size int     `json:"level3_size"`
	TotalSize  int     `json:"total_size"`
	MaxSize    int     `json:"max_size"`
	Hits       int     `json:"hits"`
	Misses     int     `json:"misses"`
	Evictions  int     `json:"evictions"`
	HitRate    float64 `json:"hit_rate"`
}

func (s Stats) String() string {
	return fmt.Sprintf("уровень1=%d, уровень2=%d, уровень3=%d, всего=%d/%d, попаданий=%d, промахов=%d, вытеснений=%d, hit rate=%.2f%%",
		s.Level1Size, s.Level2Size, s.Level3Size, s.TotalSize, s.MaxSize,
		s.Hits, s.Misses, s.Evictions, s.HitRate*100)
}

// New создает кэш запросов на maxSize элементов.
func New(maxSize int) *QueryCache {
	return &QueryCache{
		level1:  make(map[string]*queryResult),
		level2:  make(map[string]*queryResult),
		level3:  make(map[string]*queryResult),
		maxSize: maxSize,
	}
}

// Get возвращает закэшированный результат запроса.
func (c *QueryCache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if result, found := c.level1[key]; found {
		c.touch(result)
		c.hits++
		return result.value, true
	}
	if result, found := c.level2[key]; found {
		c.touch(result)
		if result.accessCount >= promoteToHot {
			delete(c.level2, key)
			c.level1[key] = result
		}
		c.hits++
		return result.value, true
	}
	if result, found := c.level3[key]; found {
		c.touch(result)
		if result.accessCount >= promoteToWarm {
			delete(c.level3, key)
			c.level2[key] = result
		}
		c.hits++
		return result.value, true
	}

	c.misses++
	return nil, false
}

// Set кладет результат запроса в кэш. Существующий ключ обновляется на
// своем уровне, новый попадает на третий.
func (c *QueryCache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, level := range []map[string]*queryResult{c.level1, c.level2, c.level3} {
		if result, found := level[key]; found {
			result.value = value
			result.lastAccess = time.Now()
			return
		}
	}

	if c.size() >= c.maxSize {
		c.evict()
	}

	now := time.Now()
	c.level3[key] = &queryResult{
		value:       value,
		createdAt:   now,
		lastAccess:  now,
		accessCount: 1,
	}
}

// Remove удаляет результат по ключу.
func (c *QueryCache) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.level1, key)
	delete(c.level2, key)
	delete(c.level3, key)
}

// Clear сбрасывает кэш. Выборки устаревают целиком после каждой новой
// загрузки расписания.
func (c *QueryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.level1 = make(map[string]*queryResult)
	c.level2 = make(map[string]*queryResult)
	c.level3 = make(map[string]*queryResult)
}

// Stats возвращает снимок статистики.
func (c *QueryCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := c.size()
	hitRate := 0.0
	if c.hits+c.misses > 0 {
		hitRate = float64(c.hits) / float64(c.hits+c.misses)
	}
	return Stats{
		Level1Size: len(c.level1),
		Level2Size: len(c.level2),
		Level3Size: len(c.level3),
		TotalSize:  total,
		MaxSize:    c.maxSize,
		Hits:       c.hits,
		Misses:     c.misses,
		Evictions:  c.evictions,
		HitRate:    hitRate,
	}
}

func (c *QueryCache) touch(result *queryResult) {
	result.lastAccess = time.Now()
	result.accessCount++
}

func (c *QueryCache) size() int {
	return len(c.level1) + len(c.level2) + len(c.level3)
}

// evict вытесняет самый старый элемент самого холодного непустого уровня.
func (c *QueryCache) evict() {
	for _, level := range []map[string]*queryResult{c.level3, c.level2, c.level1} {
		if len(level) == 0 {
			continue
		}
		oldestKey := ""
		var oldest time.Time
		for key, result := range level {
			if oldestKey == "" || result.createdAt.Before(oldest) {
				oldestKey = key
				oldest = result.createdAt
			}
		}
		delete(level, oldestKey)
		c.evictions++
		return
	}
}
