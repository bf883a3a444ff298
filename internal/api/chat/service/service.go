package chatService

import (
	"ChiTieuBackend/internal/api/chat"
	chatRepository "ChiTieuBackend/internal/api/chat/repository"
	budgetService "ChiTieuBackend/internal/api/budget/service"
	transactionService "ChiTieuBackend/internal/api/transaction/service"
	"ChiTieuBackend/internal/entity"
	"ChiTieuBackend/pkg/gemini"
	"ChiTieuBackend/pkg/nlp"
	"ChiTieuBackend/pkg/redis"
	"ChiTieuBackend/pkg/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IChatService interface {
	SendMessage(ctx context.Context, req chat.SendMessageRequest) (chat.SendMessageResponse, error)
	GetHistory(ctx context.Context, userID string, limit int) ([]entity.ChatMessage, error)
	ClearConversation(ctx context.Context, userID string) error
}

type chatService struct {
	log                *logrus.Logger
	chatRepository     chatRepository.Repository
	transactionService transactionService.ITransactionService
	budgetService      budgetService.IBudgetService
	parser             *nlp.Parser
	redis              redis.IRedis
	gemini             gemini.IGemini
	utils              utils.IUtils
}

func New(
	log *logrus.Logger,
	cr chatRepository.Repository,
	ts transactionService.ITransactionService,
	bs budgetService.IBudgetService,
	redisClient redis.IRedis,
	geminiClient gemini.IGemini,
	utils utils.IUtils,
) IChatService {
	return &chatService{
		log:                log,
		chatRepository:     cr,
		transactionService: ts,
		budgetService:      bs,
		parser:             nlp.NewParser(),
		redis:              redisClient,
		gemini:             geminiClient,
		utils:              utils,
	}
}
