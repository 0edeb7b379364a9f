package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/lifeos-app/lifeos-backend/internal/pkg/logger"
	"github.com/lifeos-app/lifeos-backend/internal/services"
)

type TransactionHandler struct {
	log                *logger.Logger
	transactionService services.TransactionService
}

func NewTransactionHandler(baseLog *logger.Logger, transactionService services.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		log:                baseLog.With("handler", "TransactionHandler"),
		transactionService: transactionService,
	}
}

func (th *TransactionHandler) Create(c *gin.Context) {
	var input services.TransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondBadRequest(c, err)
		return
	}
	txn, err := th.transactionService.Create(c.Request.Context(), input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, txn)
}

func (th *TransactionHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input services.TransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondBadRequest(c, err)
		return
	}
	txn, err := th.transactionService.Update(c.Request.Context(), id, input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, txn)
}

func (th *TransactionHandler) ListRange(c *gin.Context) {
	txns, err := th.transactionService.ListRange(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, txns)
}

func (th *TransactionHandler) MonthlySummary(c *gin.Context) {
	summary, err := th.transactionService.MonthlySummary(c.Request.Context(), c.Query("month"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, summary)
}

func (th *TransactionHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := th.transactionService.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	RespondNoContent(c)
}
