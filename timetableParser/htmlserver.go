package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
)

const (
	uploadDir = "./uploads"
	staticDir = "./static"
	port      = ":8080"
)

func runServer() {
	// Создаем необходимые директории
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		log.Fatal("Ошибка создания директории uploads:", err)
	}
	if err := os.MkdirAll(staticDir, 0755); err != nil {
		log.Fatal("Ошибка создания директории static:", err)
	}

	// Настраиваем маршруты
	http.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	http.HandleFunc("/", indexHandler)
	http.HandleFunc("/upload", uploadFileHandler)
	http.Handle("/download/", http.StripPrefix("/download/", http.FileServer(http.Dir(uploadDir))))

	log.Printf("Сервер загрузки расписаний запущен на http://localhost%s", port)
	log.Printf("Статические файлы обслуживаются из: %s", staticDir)
	log.Fatal(http.ListenAndServe(port, nil))
}

// Обработчик главной страницы
func indexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
}
