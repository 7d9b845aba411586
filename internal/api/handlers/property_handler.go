package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"goldenview/realty/internal/filter"
	"goldenview/realty/internal/models"
	"goldenview/realty/internal/services"
	"goldenview/realty/internal/storage"
	"goldenview/realty/internal/tasks"
)

// PropertyHandler handles REST requests for property listings.
type PropertyHandler struct {
	properties services.IPropertyService
	storage    storage.IS3Storage
	taskClient IAsynqClient
}

// NewPropertyHandler creates a new PropertyHandler. storage and taskClient may
// be nil, in which case image uploads are unavailable and views go uncounted.
func NewPropertyHandler(properties services.IPropertyService, storageService storage.IS3Storage, taskClient IAsynqClient) *PropertyHandler {
	return &PropertyHandler{
		properties: properties,
		storage:    storageService,
		taskClient: taskClient,
	}
}

func searchResponse(spec filter.Spec, results []models.PropertySummary) gin.H {
	return gin.H{
		"properties":        results,
		"count":             len(results),
		"activeFilterCount": filter.ActiveCount(spec),
		"badges":            filter.Badges(spec),
	}
}

// ListProperties handles GET /v1/properties with multi-select filter parameters.
func (h *PropertyHandler) ListProperties(c *gin.Context) {
	spec, err := filter.ParseQuery(c.Request.URL.Query())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	results, err := h.properties.SearchProperties(c.Request.Context(), spec)
	if err != nil {
		respondError(c, err, "Failed to search properties")
		return
	}
	c.JSON(http.StatusOK, searchResponse(spec, results))
}

// SearchLegacy handles GET /v1/properties/search with the single-select
// parameters of the older search page.
func (h *PropertyHandler) SearchLegacy(c *gin.Context) {
	var legacy filter.Legacy
	if err := c.ShouldBindQuery(&legacy); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid search parameters"})
		return
	}
	spec, err := legacy.ToSpec()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	results, err := h.properties.SearchProperties(c.Request.Context(), spec)
	if err != nil {
		respondError(c, err, "Failed to search properties")
		return
	}
	c.JSON(http.StatusOK, searchResponse(spec, results))
}

// GetProperty handles GET /v1/properties/:id.
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	p, err := h.properties.GetProperty(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to retrieve property")
		return
	}

	if h.taskClient != nil {
		task, err := tasks.NewPropertyViewedTask(id)
		if err == nil {
			_, err = h.taskClient.EnqueueContext(c.Request.Context(), task)
		}
		if err != nil {
			log.Printf("Failed to enqueue view task for property %s: %v", id.Hex(), err)
		}
	}

	c.JSON(http.StatusOK, p)
}

// SimilarProperties handles GET /v1/properties/:id/similar.
func (h *PropertyHandler) SimilarProperties(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	results, err := h.properties.SimilarProperties(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to retrieve similar properties")
		return
	}
	c.JSON(http.StatusOK, gin.H{"properties": results})
}

// CreateProperty handles POST /v1/properties. The body is the raw candidate
// record; validation happens in the service so every field error is reported.
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	body, ok := readBody(c, maxPropertyBodyBytes)
	if !ok {
		return
	}
	p, err := h.properties.CreateProperty(c.Request.Context(), caller, body)
	if err != nil {
		respondError(c, err, "Failed to create property")
		return
	}
	c.JSON(http.StatusCreated, p)
}

// UpdateProperty handles PUT /v1/properties/:id.
func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	body, ok := readBody(c, maxPropertyBodyBytes)
	if !ok {
		return
	}
	p, err := h.properties.UpdateProperty(c.Request.Context(), caller, id, body)
	if err != nil {
		respondError(c, err, "Failed to update property")
		return
	}
	c.JSON(http.StatusOK, p)
}

type deletionRequestBody struct {
	Reason  models.DeletionReason `json:"reason" binding:"required"`
	Message string                `json:"message"`
}

// RequestDeletion handles POST /v1/properties/:id/deletion-request.
func (h *PropertyHandler) RequestDeletion(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var req deletionRequestBody
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.properties.RequestDeletion(c.Request.Context(), caller, id, req.Reason, req.Message)
	if err != nil {
		respondError(c, err, "Failed to request deletion")
		return
	}
	c.JSON(http.StatusOK, p)
}

type uploadURLRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

// RequestImageUpload handles POST /v1/properties/:id/images by returning a
// presigned PUT URL the browser uploads the image to directly.
func (h *PropertyHandler) RequestImageUpload(c *gin.Context) {
	if h.storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image uploads are not configured"})
		return
	}
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var req uploadURLRequest
	if !bindJSON(c, &req) {
		return
	}
	if !strings.HasPrefix(req.ContentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only image uploads are accepted"})
		return
	}

	p, err := h.properties.GetProperty(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to retrieve property")
		return
	}
	if !caller.CanModify(p) {
		respondError(c, services.ErrForbidden, "")
		return
	}

	url, key, err := h.storage.GeneratePresignedPutURL(c.Request.Context(), p.Owner.Hex(), id.Hex(), req.Filename, req.ContentType)
	if err != nil {
		respondError(c, err, "Failed to generate upload URL")
		return
	}
	c.JSON(http.StatusOK, gin.H{"uploadUrl": url, "key": key})
}

type imageCompleteRequest struct {
	Key       string `json:"key" binding:"required"`
	Caption   string `json:"caption"`
	Room      string `json:"room"`
	IsPrimary bool   `json:"isPrimary"`
}

// CompleteImageUpload handles POST /v1/properties/:id/images/complete. The
// uploaded object is resized in the background and then attached to the
// listing; without a task queue it is attached straight away.
func (h *PropertyHandler) CompleteImageUpload(c *gin.Context) {
	if h.storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image uploads are not configured"})
		return
	}
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var req imageCompleteRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.properties.GetProperty(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to retrieve property")
		return
	}
	if !caller.CanModify(p) {
		respondError(c, services.ErrForbidden, "")
		return
	}
	if !strings.HasPrefix(req.Key, "properties/"+p.Owner.Hex()+"/"+id.Hex()+"/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Key does not belong to this property"})
		return
	}

	if h.taskClient == nil {
		img := models.Image{URL: h.storage.PublicURL(req.Key), Caption: req.Caption, Room: req.Room, IsPrimary: req.IsPrimary}
		updated, err := h.properties.AddImage(c.Request.Context(), caller, id, img)
		if err != nil {
			respondError(c, err, "Failed to attach image")
			return
		}
		c.JSON(http.StatusOK, updated)
		return
	}

	task, err := tasks.NewImageProcessTask(tasks.ImageTaskPayload{
		S3Key:      req.Key,
		PropertyID: id.Hex(),
		Caption:    req.Caption,
		Room:       req.Room,
		IsPrimary:  req.IsPrimary,
	})
	if err != nil {
		respondError(c, err, "Failed to create image task")
		return
	}
	info, err := h.taskClient.EnqueueContext(c.Request.Context(), task)
	if err != nil {
		respondError(c, err, "Failed to queue image processing")
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"taskId": info.ID, "key": req.Key})
}

// ImportProperties handles POST /v1/admin/properties/import. Valid records are
// inserted; invalid ones are reported by index.
func (h *PropertyHandler) ImportProperties(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	body, ok := readBody(c, maxImportBodyBytes)
	if !ok {
		return
	}
	res, err := h.properties.ImportProperties(c.Request.Context(), caller, body)
	if err != nil {
		respondError(c, err, "Failed to import properties")
		return
	}
	status := http.StatusCreated
	if len(res.Inserted) == 0 && len(res.Failed) > 0 {
		status = http.StatusUnprocessableEntity
	} else if len(res.Failed) > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, res)
}

// AdminListProperties handles GET /v1/admin/properties.
func (h *PropertyHandler) AdminListProperties(c *gin.Context) {
	opts := services.ListOptions{Status: models.ListingStatus(c.Query("status"))}
	if v := c.Query("featured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid featured value"})
			return
		}
		opts.Featured = &featured
	}
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		opts.Limit = limit
	}
	list, err := h.properties.ListProperties(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err, "Failed to list properties")
		return
	}
	c.JSON(http.StatusOK, gin.H{"properties": list, "count": len(list)})
}

// SetFeatured handles PATCH /v1/admin/properties/:id/featured.
func (h *PropertyHandler) SetFeatured(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Featured *bool `json:"featured" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.properties.SetFeatured(c.Request.Context(), id, *req.Featured)
	if err != nil {
		respondError(c, err, "Failed to update property")
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateStatus handles PATCH /v1/admin/properties/:id/status.
func (h *PropertyHandler) UpdateStatus(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Status models.ListingStatus `json:"status" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.properties.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err, "Failed to update property")
		return
	}
	c.JSON(http.StatusOK, p)
}

// ListDeletionRequests handles GET /v1/admin/deletion-requests.
func (h *PropertyHandler) ListDeletionRequests(c *gin.Context) {
	status := models.ReviewStatus(c.DefaultQuery("status", string(models.ReviewPending)))
	list, err := h.properties.ListDeletionRequests(c.Request.Context(), status)
	if err != nil {
		respondError(c, err, "Failed to list deletion requests")
		return
	}
	c.JSON(http.StatusOK, gin.H{"properties": list, "count": len(list)})
}

// ReviewDeletion handles PATCH /v1/admin/properties/:id/deletion-request.
func (h *PropertyHandler) ReviewDeletion(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Status models.ReviewStatus `json:"status" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.properties.ReviewDeletion(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err, "Failed to review deletion request")
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteProperty handles DELETE /v1/admin/properties/:id.
func (h *PropertyHandler) DeleteProperty(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.properties.DeleteProperty(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete property")
		return
	}
	c.Status(http.StatusNoContent)
}
