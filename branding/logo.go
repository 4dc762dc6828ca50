package branding

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"voyagerie/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
)

// maxLogoWidth keeps uploaded logos at a size the PDF header can center
// without overflowing the page.
const maxLogoWidth = 500

func logoPath() string {
	if p := os.Getenv("PDF_LOGO_PATH"); p != "" {
		return p
	}
	return "static/branding/logo.png"
}

// POST /api/branding/logo
func UploadLogo(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("logo")
	if err != nil {
		http.Error(w, "Logo file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if ok := utils.ValidateImageFileType(w, header); !ok {
		return
	}

	img, err := imaging.Decode(file)
	if err != nil {
		http.Error(w, "Failed to decode image", http.StatusBadRequest)
		return
	}

	if img.Bounds().Dx() > maxLogoWidth {
		img = imaging.Resize(img, maxLogoWidth, 0, imaging.Lanczos)
	}

	path := logoPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		http.Error(w, "Failed to create branding directory", http.StatusInternalServerError)
		return
	}

	if err := imaging.Save(img, path); err != nil {
		http.Error(w, fmt.Sprintf("Failed to save logo: %v", err), http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Logo updated",
		"path":    "/" + path,
	})
}
