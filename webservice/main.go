package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tedmon1998/TimetableParser/normalization"
	"github.com/tedmon1998/TimetableParser/rooms"
	"github.com/tedmon1998/TimetableParser/webservice/cache"
)

// ResponseState структура для унифицированного ответа
type ResponseState struct {
	Status    string      `json:"status"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Error     string      `json:"error,omitempty"`
}

// WebService REST API над очищенным расписанием и служебными файлами
type WebService struct {
	db         *sql.DB
	cache      *cache.QueryCache
	roomsFile  string
	abbrevFile string

	// Файл сокращений меняется через POST, запись сериализуется
	abbrevMu sync.Mutex
}

func main() {
	var (
		port       = flag.String("port", ":8081", "адрес REST API")
		roomsFile  = flag.String("rooms", "info/audiences.json", "файл реестра аудиторий")
		abbrevFile = flag.String("abbreviations", "info/abbreviations.json", "файл сокращений дисциплин")
		cacheSize  = flag.Int("cache-size", 1000, "размер кэша выборок")
	)
	flag.Parse()

	db, err := connectToDB()
	if err != nil {
		log.Fatal("Ошибка подключения к БД:", err)
	}
	defer db.Close()

	service := &WebService{
		db:         db,
		cache:      cache.New(*cacheSize),
		roomsFile:  *roomsFile,
		abbrevFile: *abbrevFile,
	}

	router := gin.Default()
	router.Use(corsMiddleware())

	api := router.Group("/api/v1")
	{
		api.GET("/health", service.healthCheck)
		api.GET("/records", service.getRecords)
		api.GET("/rooms", service.getRooms)
		api.GET("/abbreviations", service.getAbbreviations)
		api.POST("/abbreviations", service.addAbbreviations)
		api.GET("/cache/stats", service.getCacheStats)
		api.POST("/cache/clear", service.clearCache)
	}

	log.Printf("REST API расписания запущен на %s", *port)
	log.Printf("Кэш выборок: 3 уровня, до %d элементов", *cacheSize)
	router.Run(*port)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func (s *WebService) healthCheck(c *gin.Context) {
	status := "healthy"
	httpStatus := http.StatusOK
	data := map[string]interface{}{}

	if err := s.db.Ping(); err != nil {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
		log.Printf("Проверка БД не прошла: %v", err)
	} else if count, err := countRecords(s.db); err == nil {
		data["records"] = count
	}

	c.JSON(httpStatus, ResponseState{
		Status:    status,
		Data:      data,
		Timestamp: time.Now(),
	})
}

// getRecords выборка расписания с фильтрами по группе, дню, преподавателю
// и неделе. Повторные выборки отдаются из кэша.
func (s *WebService) getRecords(c *gin.Context) {
	filter := RecordFilter{
		Group:   c.Query("group"),
		Day:     c.Query("day"),
		Teacher: c.Query("teacher"),
		Week:    c.Query("week"),
	}

	key := filter.CacheKey()
	if cached, found := s.cache.Get(key); found {
		c.JSON(http.StatusOK, ResponseState{
			Status:    "success",
			Data:      cached,
			Timestamp: time.Now(),
		})
		return
	}

	records, err := queryRecords(s.db, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ResponseState{
			Status:    "error",
			Timestamp: time.Now(),
			Error:     err.Error(),
		})
		return
	}

	s.cache.Set(key, records)
	c.JSON(http.StatusOK, ResponseState{
		Status:    "success",
		Data:      records,
		Timestamp: time.Now(),
	})
}

func (s *WebService) getRooms(c *gin.Context) {
	reg, err := rooms.LoadRegistry(s.roomsFile)
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseState{
			Status:    "error",
			Timestamp: time.Now(),
			Error:     fmt.Sprintf("реестр аудиторий недоступен: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, ResponseState{
		Status:    "success",
		Data:      map[string]interface{}{"rooms": reg.All(), "count": reg.Len()},
		Timestamp: time.Now(),
	})
}

func (s *WebService) getAbbreviations(c *gin.Context) {
	s.abbrevMu.Lock()
	file, err := normalization.LoadAbbreviationFile(s.abbrevFile)
	s.abbrevMu.Unlock()
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseState{
			Status:    "error",
			Timestamp: time.Now(),
			Error:     err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ResponseState{
		Status:    "success",
		Data:      file,
		Timestamp: time.Now(),
	})
}

// addAbbreviations вливает присланные сокращения в словарь. Конфликты
// разрешаются в пользу существующих записей и возвращаются в ответе.
func (s *WebService) addAbbreviations(c *gin.Context) {
	var request struct {
		Category      string            `json:"category"`
		Abbreviations map[string]string `json:"abbreviations"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, ResponseState{
			Status:    "error",
			Timestamp: time.Now(),
			Error:     fmt.Sprintf("некорректное тело запроса: %v", err),
		})
		return
	}
	if len(request.Abbreviations) == 0 {
		c.JSON(http.StatusBadRequest, ResponseState{
			Status:    "error",
			Timestamp: time.Now(),
			Error:     "пустой список сокращений",
		})
		return
	}
	if request.Category == "" {
		request.Category = "Другие"
	}

	s.abbrevMu.Lock()
	defer s.abbrevMu.Unlock()

	file, err := normalization.LoadAbbreviationFile(s.abbrevFile)
	if err != nil {
		file = normalization.NewAbbreviationFile()
	}

	added, conflicts := file.MergeEntries(request.Category, request.Abbreviations, normalization.KeepExisting)
	if err := file.Save(s.abbrevFile); err != nil {
		c.JSON(http.StatusInternalServerError, ResponseState{
			Status:    "error",
			Timestamp: time.Now(),
			Error:     err.Error(),
		})
		return
	}

	conflictList := make([]map[string]string, 0, len(conflicts))
	for _, conflict := range conflicts {
		conflictList = append(conflictList, map[string]string{
			"pattern":  conflict.Pattern,
			"existing": conflict.Existing,
			"incoming": conflict.Incoming,
		})
	}

	c.JSON(http.StatusOK, ResponseState{
		Status:    "success",
		Data:      map[string]interface{}{"added": added, "conflicts": conflictList},
		Timestamp: time.Now(),
	})
}

func (s *WebService) getCacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, ResponseState{
		Status:    "success",
		Data:      s.cache.Stats(),
		Timestamp: time.Now(),
	})
}

func (s *WebService) clearCache(c *gin.Context) {
	s.cache.Clear()
	log.Printf("Кэш выборок сброшен")
	c.JSON(http.StatusOK, ResponseState{
		Status:    "success",
		Timestamp: time.Now(),
	})
}
