package services

import (
	"errors"
	"regexp"
	"strings"

	"quizplay/models"

	"gorm.io/gorm"
)

// ItemsPerPage is the catalog page size for search results.
const ItemsPerPage = 10

var ErrQuizNotFound = errors.New("quiz not found")

type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

type SaveQuizRequest struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
}

// Count returns the number of quizzes in the catalog.
func (s *CatalogService) Count() (int64, error) {
	var count int64
	err := s.db.Model(&models.Quiz{}).Count(&count).Error
	return count, err
}

// List returns the whole catalog in id order.
func (s *CatalogService) List() ([]models.Quiz, error) {
	var quizzes []models.Quiz
	err := s.db.Order("id").Find(&quizzes).Error
	return quizzes, err
}

var searchSpaces = regexp.MustCompile(` +`)

// likePattern turns a free-text search term into a LIKE pattern.
// Runs of spaces match anything, so "capital france" finds
// "Capital of France?".
func likePattern(term string) string {
	return "%" + searchSpaces.ReplaceAllString(term, "%") + "%"
}

// Search returns one page of quizzes whose question matches the term,
// plus the total match count for pagination.
func (s *CatalogService) Search(term string, page int) ([]models.Quiz, int64, error) {
	if page < 1 {
		page = 1
	}

	query := s.db.Model(&models.Quiz{})
	if term != "" {
		query = query.Where("question ILIKE ?", likePattern(term))
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var quizzes []models.Quiz
	err := query.Order("id").
		Offset(ItemsPerPage * (page - 1)).
		Limit(ItemsPerPage).
		Find(&quizzes).Error
	return quizzes, count, err
}

func (s *CatalogService) GetByID(id uint) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := s.db.First(&quiz, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

func (s *CatalogService) Create(req *SaveQuizRequest) (*models.Quiz, error) {
	quiz := models.Quiz{
		Question: req.Question,
		Answer:   req.Answer,
	}

	if err := s.db.Create(&quiz).Error; err != nil {
		return nil, err
	}

	return &quiz, nil
}

func (s *CatalogService) Update(id uint, req *SaveQuizRequest) (*models.Quiz, error) {
	quiz, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	quiz.Question = req.Question
	quiz.Answer = req.Answer

	if err := s.db.Save(quiz).Error; err != nil {
		return nil, err
	}

	return quiz, nil
}

func (s *CatalogService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}

	return s.db.Delete(&models.Quiz{}, id).Error
}

// CheckAnswer compares a submitted answer against the quiz's expected
// answer, ignoring surrounding whitespace and letter case. This is the
// only equivalence rule, for both single-question play and random play.
func CheckAnswer(quiz *models.Quiz, submitted string) bool {
	return normalizeAnswer(submitted) == normalizeAnswer(quiz.Answer)
}

func normalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}
