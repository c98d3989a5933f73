package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lexstyle/api/response"
	"lexstyle/service"
	"lexstyle/types"
)

// AIHandler exposes the style pipeline over HTTP. Auth/RBAC run upstream;
// this layer only trusts the tenant/user headers the gateway injects.
type AIHandler struct {
	training *service.TrainingService
	styles   *service.StyleService
	drafts   *service.DraftService
	log      *zap.Logger
}

func NewAIHandler(training *service.TrainingService, styles *service.StyleService, drafts *service.DraftService, log *zap.Logger) *AIHandler {
	return &AIHandler{
		training: training,
		styles:   styles,
		drafts:   drafts,
		log:      log,
	}
}

// UploadTrainingDocs ingests one or more firm documents for style learning.
// One failing file does not abort the batch.
func (h *AIHandler) UploadTrainingDocs(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Fail(c, "invalid multipart form")
		return
	}
	files := form.File["file"]
	if len(files) == 0 {
		response.Fail(c, "no files received, expected field 'file'")
		return
	}
	docType := c.PostForm("document_type")
	categoryID := c.PostForm("category_id")
	tenantID := c.GetString("tenant_id")

	var docIDs []string
	var failed []string
	for _, file := range files {
		id, err := h.training.UploadAndProcess(c.Request.Context(), tenantID, file, docType, categoryID)
		if err != nil {
			h.log.Warn("upload failed", zap.String("file", file.Filename), zap.Error(err))
			failed = append(failed, file.Filename)
			continue
		}
		docIDs = append(docIDs, id)
	}

	if len(docIDs) == 0 && len(failed) > 0 {
		response.Fail(c, "all files failed to process")
		return
	}
	response.Success(c, gin.H{
		"doc_ids":      docIDs,
		"failed_files": failed,
	})
}

func (h *AIHandler) ListTrainingDocs(c *gin.Context) {
	docs, err := h.training.List(c.Request.Context(), c.GetString("tenant_id"))
	if err != nil {
		response.Fail(c, err.Error())
		return
	}
	response.Success(c, docs)
}

func (h *AIHandler) DeleteTrainingDoc(c *gin.Context) {
	err := h.training.Delete(c.Request.Context(), c.GetString("tenant_id"), c.Param("id"))
	if err != nil {
		response.Fail(c, err.Error())
		return
	}
	response.Success(c, nil)
}

// SynthesizeProfile streams the two-stage progress state machine as SSE
// events and finishes with the profile (or an error event).
func (h *AIHandler) SynthesizeProfile(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	userID := c.GetString("user_id")

	type outcome struct {
		profile  *types.MasterStyleProfile
		degraded bool
		err      error
	}
	progressCh := make(chan types.Progress, 8)
	done := make(chan outcome, 1)

	go func() {
		defer close(progressCh)
		profile, degraded, err := h.styles.SynthesizeMaster(c.Request.Context(), tenantID, userID, func(p types.Progress) {
			progressCh <- p
		})
		done <- outcome{profile, degraded, err}
	}()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	for p := range progressCh {
		c.SSEvent("progress", p)
		c.Writer.Flush()
	}
	res := <-done
	if res.err != nil {
		c.SSEvent("error", gin.H{"msg": res.err.Error()})
	} else {
		c.SSEvent("result", gin.H{"profile": res.profile, "degraded": res.degraded})
	}
	c.Writer.Flush()
}

func (h *AIHandler) SetManualProfile(c *gin.Context) {
	var req struct {
		StyleText string `json:"style_text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "style_text is required")
		return
	}
	profile, err := h.styles.SetManual(c.Request.Context(), c.GetString("tenant_id"), req.StyleText)
	if err != nil {
		response.Fail(c, err.Error())
		return
	}
	response.Success(c, profile)
}

func (h *AIHandler) GetActiveProfile(c *gin.Context) {
	profile, err := h.styles.GetActive(c.Request.Context(), c.GetString("tenant_id"))
	if err != nil {
		response.Fail(c, err.Error())
		return
	}
	response.Success(c, profile)
}

func (h *AIHandler) PreviewContract(c *gin.Context) {
	var req types.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "client_id and contract_type are required")
		return
	}
	result, err := h.drafts.Preview(c.Request.Context(), c.GetString("tenant_id"), c.GetString("user_id"), req)
	if err != nil {
		response.Fail(c, err.Error())
		return
	}
	response.Success(c, result)
}

func (h *AIHandler) GenerateContract(c *gin.Context) {
	var req types.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "client_id and contract_type are required")
		return
	}
	result, err := h.drafts.Generate(c.Request.Context(), c.GetString("tenant_id"), c.GetString("user_id"), req)
	if err != nil {
		response.Fail(c, err.Error())
		return
	}
	response.Success(c, result)
}

func (h *AIHandler) GenerateClause(c *gin.Context) {
	var req types.ClauseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "content and clause_type are required")
		return
	}
	result, err := h.drafts.Clause(c.Request.Context(), c.GetString("tenant_id"), c.GetString("user_id"), req)
	if err != nil {
		response.Fail(c, err.Error())
		return
	}
	response.Success(c, result)
}

func (h *AIHandler) RefineContract(c *gin.Context) {
	var req types.RefineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "content and objective are required")
		return
	}
	result, err := h.drafts.Refine(c.Request.Context(), c.GetString("tenant_id"), c.GetString("user_id"), req)
	if err != nil {
		response.Fail(c, err.Error())
		return
	}
	response.Success(c, result)
}

func (h *AIHandler) ImproveContract(c *gin.Context) {
	var req struct {
		Content  string `json:"content" binding:"required"`
		UseStyle bool   `json:"use_style"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "content is required")
		return
	}
	result, err := h.drafts.Improve(c.Request.Context(), c.GetString("tenant_id"), c.GetString("user_id"), req.Content, req.UseStyle)
	if err != nil {
		response.Fail(c, err.Error())
		return
	}
	response.Success(c, result)
}
