package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ovenandcrumb/bakehouse/app/orders"
	"github.com/ovenandcrumb/bakehouse/app/tasks"
)

// GetSitemap serves the crawl sitemap. A fresh snapshot is served directly;
// otherwise the document is regenerated from the content source. Generation
// failures fail the whole response rather than publishing a partial sitemap.
func (h *Handler) GetSitemap(c *gin.Context) {
	h.serveDocument(c, SitemapDocument, h.sitemapDoc)
}

// GetMerchantFeed serves the shopping product feed with the same fail-closed
// policy: a broken feed must never reach the feed validator.
func (h *Handler) GetMerchantFeed(c *gin.Context) {
	h.serveDocument(c, MerchantFeedDocument, h.merchantDoc)
}

func (h *Handler) serveDocument(c *gin.Context, name string, renderer tasks.DocumentRenderer) {
	if snapshot, err := h.snapshots.GetFresh(name, h.maxAge); err != nil {
		slog.Error("Snapshot lookup failed", "document", name, "error", err)
	} else if snapshot != nil {
		h.writeDocument(c, snapshot.ContentType, snapshot.Body)
		return
	}

	contentType, body, err := renderer.RenderDocument(c.Request.Context(), time.Now())
	if err != nil {
		slog.Error("Document generation failed", "document", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   fmt.Sprintf("Failed to generate %s", name),
			"details": err.Error(),
		})
		return
	}

	if err := h.snapshots.Upsert(name, contentType, body); err != nil {
		slog.Error("Failed to store snapshot", "document", name, "error", err)
	}

	h.writeDocument(c, contentType, body)
}

func (h *Handler) writeDocument(c *gin.Context, contentType string, body []byte) {
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, contentType, body)
}

// GetRobots serves the crawler policy with a pointer at the sitemap.
func (h *Handler) GetRobots(c *gin.Context) {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /api/\n\nSitemap: %s/sitemap.xml\n", h.baseURL)
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if count, err := h.snapshots.GetSnapshotCount(); err == nil {
		health["snapshots"] = count
	}

	c.JSON(http.StatusOK, health)
}

// GetOrder returns one order document.
func (h *Handler) GetOrder(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing order ID"})
		return
	}

	order, err := h.orderSvc.Get(c.Request.Context(), id)
	if err != nil {
		slog.Error("Failed to fetch order", "order", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order", "details": err.Error()})
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdateOrder applies a partial update. It accepts a JSON body or multipart
// form data when the update attaches a fulfilment note with images.
func (h *Handler) UpdateOrder(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing order ID"})
		return
	}

	req, err := h.parseUpdateRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	order, err := h.orderSvc.Update(c.Request.Context(), id, req)
	if err != nil {
		slog.Error("Failed to update order", "order", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order", "details": err.Error()})
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   order,
		"message": "Order updated",
	})
}

func (h *Handler) parseUpdateRequest(c *gin.Context) (orders.UpdateRequest, error) {
	var req orders.UpdateRequest

	contentType := c.ContentType()
	if contentType != "multipart/form-data" {
		if err := c.ShouldBindJSON(&req); err != nil {
			return req, err
		}
		return req, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return req, err
	}

	formValue := func(key string) string {
		if values := form.Value[key]; len(values) > 0 {
			return values[0]
		}
		return ""
	}

	req.Status = formValue("status")
	req.DeliveryMethod = formValue("deliveryMethod")
	req.DeliveryDate = formValue("deliveryDate")
	req.Address = formValue("address")
	req.NoteText = formValue("note")

	for _, fileHeader := range form.File["images"] {
		file, err := fileHeader.Open()
		if err != nil {
			slog.Error("Failed to open uploaded image", "filename", fileHeader.Filename, "error", err)
			continue
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			slog.Error("Failed to read uploaded image", "filename", fileHeader.Filename, "error", err)
			continue
		}

		req.NoteImages = append(req.NoteImages, orders.ImageUpload{
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	return req, nil
}

type deleteRequest struct {
	Password  string `json:"password"`
	Permanent bool   `json:"permanent"`
}

// DeleteOrder cancels an order. The default is a reversible soft cancel; a
// permanent delete requires the admin password.
func (h *Handler) DeleteOrder(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing order ID"})
		return
	}

	// The body is optional; an absent body means a soft cancel.
	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	order, err := h.orderSvc.Delete(c.Request.Context(), id, req.Password, req.Permanent)
	if errors.Is(err, orders.ErrUnauthorized) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin password"})
		return
	}
	if err != nil {
		slog.Error("Failed to delete order", "order", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order", "details": err.Error()})
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	message := "Order cancelled"
	if req.Permanent {
		message = "Order permanently deleted"
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   order,
		"message": message,
	})
}
