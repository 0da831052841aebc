package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"onmodel/internal/domain"
	"onmodel/internal/middleware"
	"onmodel/internal/storage"
)

const multipartMemory = 32 << 20

type generatePayload struct {
	ProductName    string         `json:"productName"`
	Highlights     string         `json:"highlights"`
	Vibe           string         `json:"vibe"`
	TargetCustomer string         `json:"targetCustomer"`
	PricePoint     string         `json:"pricePoint"`
	Combos         []domain.Combo `json:"combos"`
	Shots          []string       `json:"shots"`
	Models         []string       `json:"models"`
}

type generateResponse struct {
	BatchID string             `json:"batchId"`
	Results domain.BatchResult `json:"results"`
}

// Generate runs a batch synchronously. The request is multipart with an
// "image" file part and a "payload" JSON field.
func (a *App) Generate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.RequestIDFromContext(r.Context())
	log := a.Logger.With().Str("request_id", requestID).Logger()

	if strings.TrimSpace(a.Credentials.APIToken) == "" {
		a.fail(w, r, domain.ErrMissingCredentials)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, a.Config.MaxUploadBytes+(1<<20))
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			a.error(w, http.StatusRequestEntityTooLarge, "payload_too_large", "Upload exceeds the size limit.")
			return
		}
		a.error(w, http.StatusBadRequest, "invalid_multipart", "Expected a multipart form upload.")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	image, err := a.readImage(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if int64(len(image.Data)) > a.Config.MaxUploadBytes {
		a.error(w, http.StatusRequestEntityTooLarge, "payload_too_large", "Upload exceeds the size limit.")
		return
	}
	payload, err := readPayload(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	combos := payload.Combos
	if len(combos) == 0 && (len(payload.Shots) > 0 || len(payload.Models) > 0) {
		combos = a.Presets.ExpandCombos(payload.Shots, payload.Models)
	}
	if len(combos) > a.Config.MaxCombos {
		a.error(w, http.StatusBadRequest, "too_many_combos", fmt.Sprintf("A batch may contain at most %d combos.", a.Config.MaxCombos))
		return
	}
	params := domain.BatchParams{
		ProductName:    payload.ProductName,
		Highlights:     payload.Highlights,
		Vibe:           payload.Vibe,
		TargetCustomer: payload.TargetCustomer,
		PricePoint:     payload.PricePoint,
	}

	results, err := a.Runner.RunBatch(r.Context(), domain.BatchRequest{
		Params: params,
		Combos: combos,
		Image:  image,
	}, a.Credentials)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	batch := domain.Batch{
		ID:        uuid.NewString(),
		RequestID: requestID,
		Params:    params,
		Results:   results,
		CreatedAt: a.now().UTC(),
	}
	if a.Archive != nil {
		key, err := a.Archive.Write(r.Context(), storage.ReferenceKey(batch.ID, image.MIMEType, batch.CreatedAt), image.Data)
		if err != nil {
			log.Warn().Err(err).Str("batch_id", batch.ID).Msg("archive reference image failed")
		} else {
			batch.ReferenceKey = key
		}
	}
	if a.Store != nil {
		if err := a.Store.Save(r.Context(), batch); err != nil {
			log.Warn().Err(err).Str("batch_id", batch.ID).Msg("save batch failed")
		}
	}

	succeeded, failed := results.Counts()
	log.Info().
		Str("batch_id", batch.ID).
		Int("succeeded", succeeded).
		Int("failed", failed).
		Msg("batch generated")
	a.json(w, http.StatusOK, generateResponse{BatchID: batch.ID, Results: results})
}

func (a *App) readImage(r *http.Request) (domain.ReferenceImage, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		return domain.ReferenceImage{}, domain.ErrMissingImage
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return domain.ReferenceImage{}, err
	}
	if len(data) == 0 {
		return domain.ReferenceImage{}, domain.ErrMissingImage
	}
	mime := strings.TrimSpace(header.Header.Get("Content-Type"))
	if mime == "" || mime == "application/octet-stream" {
		mime = domain.DefaultImageMIME
	}
	return domain.ReferenceImage{Data: data, MIMEType: mime}, nil
}

func readPayload(r *http.Request) (generatePayload, error) {
	raw := strings.TrimSpace(r.FormValue("payload"))
	if raw == "" {
		return generatePayload{}, domain.ErrMissingPayload
	}
	var payload generatePayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return generatePayload{}, domain.ErrInvalidPayload
	}
	return payload, nil
}
