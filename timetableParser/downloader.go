package main

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const defaultSchedulePage = "https://www.surgu.ru/ucheba/raspisanie/ochnaya-forma-obucheniya"

// Ключевые слова институтов для имен скачанных файлов
var instituteSlugs = []struct {
	keyword string
	slug    string
}{
	{"медицинск", "medical"},
	{"политехническ", "polytechnic"},
	{"экономик", "economics"},
	{"гуманитарн", "humanities"},
	{"государств", "state_law"},
	{"естественн", "natural_sciences"},
	{"средн", "secondary_medical"},
	{"лечебн", "medical"},
	{"педагог", "pedagogy"},
	{"юриспруденц", "law"},
	{"информатик", "informatics"},
	{"строительств", "construction"},
	{"физик", "physics"},
	{"математик", "mathematics"},
}

var translitMap = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "yo",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "sch",
	'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
}

var (
	badFileChars      = regexp.MustCompile(`[<>:"/\\|?*]`)
	repeatUnderscores = regexp.MustCompile(`[_\s]+`)
)

type scheduleLink struct {
	URL       string
	Filename  string
	Institute string
}

var downloadClient = &http.Client{Timeout: 30 * time.Second}

// DownloadSchedules скачивает PDF расписания со страницы университета в
// указанную папку. Уже скачанные файлы пропускаются.
func DownloadSchedules(pageURL, outDir string) (int, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return 0, err
	}

	links, err := collectScheduleLinks(pageURL)
	if err != nil {
		return 0, err
	}
	log.Printf("Найдено ссылок на PDF: %d", len(links))

	downloaded := 0
	for _, link := range links {
		target := filepath.Join(outDir, link.Filename)
		if fileExists(target) {
			log.Printf("Файл уже существует, пропускаем: %s", link.Filename)
			continue
		}
		if err := downloadFile(link.URL, target); err != nil {
			log.Printf("Ошибка скачивания %s: %v", link.Filename, err)
			continue
		}
		log.Printf("Скачано: %s", target)
		downloaded++
	}
	return downloaded, nil
}

// collectScheduleLinks собирает ссылки на PDF со страницы расписаний.
func collectScheduleLinks(pageURL string) ([]scheduleLink, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, err
	}

	resp, err := downloadClient.Get(pageURL)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки страницы расписаний: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("страница расписаний вернула статус %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка разбора страницы расписаний: %v", err)
	}

	var links []scheduleLink
	seen := make(map[string]bool)

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" {
			return
		}
		lower := strings.ToLower(href)
		if !strings.Contains(lower, ".pdf") &&
			!strings.Contains(lower, "/attachment/") &&
			!strings.Contains(lower, "/download/") {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		full := base.ResolveReference(ref).String()
		if seen[full] {
			return
		}
		seen[full] = true

		text := strings.TrimSpace(sel.Text())
		institute := instituteSlug(text, full)
		links = append(links, scheduleLink{
			URL:       full,
			Filename:  scheduleFilename(text, full, institute),
			Institute: institute,
		})
	})

	return links, nil
}

// instituteSlug подбирает латинское имя института по тексту ссылки и
// адресу; если ключевые слова не совпали, текст транслитерируется.
func instituteSlug(linkText, linkURL string) string {
	combined := strings.ToLower(linkText + " " + linkURL)
	for _, entry := range instituteSlugs {
		if strings.Contains(combined, entry.keyword) {
			return entry.slug
		}
	}

	name := linkText
	if idx := strings.IndexAny(name, ",("); idx >= 0 {
		name = name[:idx]
	}

	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if lat, ok := translitMap[r]; ok {
			b.WriteString(lat)
		} else if r == ' ' || r == '-' || r == '_' ||
			(r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	slug := strings.Trim(repeatUnderscores.ReplaceAllString(b.String(), "_"), "_")
	if len(slug) > 30 {
		slug = slug[:30]
	}
	if slug == "" {
		return "unknown"
	}
	return slug
}

// scheduleFilename строит имя файла: имя из URL, иначе очищенный текст
// ссылки, с префиксом института.
func scheduleFilename(linkText, linkURL, institute string) string {
	name := ""
	if parsed, err := url.Parse(linkURL); err == nil {
		candidate, _ := url.PathUnescape(path.Base(parsed.Path))
		if strings.HasSuffix(strings.ToLower(candidate), ".pdf") {
			name = candidate
		}
	}
	if name == "" {
		name = cleanFilename(linkText)
		if len(name) < 3 {
			name = fmt.Sprintf("schedule_%s", institute)
		}
		name += ".pdf"
	}

	if institute != "" && !strings.Contains(strings.ToLower(name), institute) {
		name = institute + "_" + name
	}
	return cleanFilename(name)
}

// cleanFilename убирает символы, недопустимые в именах файлов.
func cleanFilename(name string) string {
	name = badFileChars.ReplaceAllString(name, "_")
	name = repeatUnderscores.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_ ")
	if runes := []rune(name); len(runes) > 200 {
		name = string(runes[:200])
	}
	return name
}

func downloadFile(fileURL, target string) error {
	resp, err := downloadClient.Get(fileURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("статус %d", resp.StatusCode)
	}

	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(f, resp.Body)
	return err
}
