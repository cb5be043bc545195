package telegram

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"github.com/yourusername/biosmaris-storefront/internal/domain/catalog"
	"github.com/yourusername/biosmaris-storefront/internal/domain/entity"
)

const welcomeMessage = `🌊 Bienvenue chez Bios Maris !

Compléments alimentaires d'origine marine.

Écrivez simplement ce que vous cherchez (par ex. "omega") ou utilisez :
/produits - tout le catalogue
/categories - parcourir par catégorie
/qr <code> - retrouver un produit par son QR code
/contact - nous écrire
/help - toutes les commandes`

const helpMessage = `📖 Commandes

Catalogue
/produits - liste complète
/recherche <texte> - recherche par nom, description ou catégorie
/categories - catégories disponibles
/categorie <nom> - produits d'une catégorie
/qr <code> - recherche par QR code
/produit <id> - fiche produit

Contact
/contact - envoyer un message
/coordonnees - email et téléphone de la boutique
/annuler - annuler l'opération en cours

Administration
/admin - connexion
/logout - déconnexion
/profil <email> <téléphone> - modifier les coordonnées
/ajouter - ajouter un produit
/modifier <id> - modifier un produit
/supprimer <qr> - supprimer un produit
/export - télécharger le catalogue (.xlsx)
/messages - boîte de réception
/lu <id> - marquer un message comme lu
/supprimermsg <id> - supprimer un message
Envoyez un fichier .xlsx pour importer des produits.`

// splitMessage cuts text into parts of at most limit bytes, preferring line
// breaks and never splitting a rune.
func splitMessage(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	var parts []string
	for len(text) > limit {
		cut := strings.LastIndex(text[:limit], "\n")
		if cut <= 0 {
			cut = limit
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
		}
		parts = append(parts, text[:cut])
		text = strings.TrimLeft(text[cut:], "\n")
	}
	if text != "" {
		parts = append(parts, text)
	}
	return parts
}

func formatPrice(price float64) string {
	return fmt.Sprintf("%.2f €", price)
}

// formatProductLine is the one-line entry used in lists.
func formatProductLine(p entity.Product) string {
	line := fmt.Sprintf("• %s - %s", p.Name, formatPrice(p.Price))
	if !p.QRCode.IsZero() {
		line += fmt.Sprintf(" (QR %s)", p.QRCode)
	}
	return line
}

func formatProductList(title string, products []entity.Product) string {
	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n\n")
	for _, p := range products {
		b.WriteString(formatProductLine(p))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatProduct renders the detail card of one product.
func formatProduct(p entity.Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🧴 %s\n", p.Name)
	fmt.Fprintf(&b, "💶 %s\n", formatPrice(p.Price))
	fmt.Fprintf(&b, "📂 %s\n", catalog.DisplayCategory(p.Category))
	if !p.QRCode.IsZero() {
		fmt.Fprintf(&b, "🔖 QR %s\n", p.QRCode)
	}
	if p.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", p.Description)
	}
	writeList(&b, "Bienfaits", p.Benefits)
	writeList(&b, "Ingrédients", p.Ingredients)
	if p.Usage != "" {
		fmt.Fprintf(&b, "\nUtilisation : %s\n", p.Usage)
	}
	if p.ID != "" {
		fmt.Fprintf(&b, "\nid: %s", p.ID)
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s :\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "  - %s\n", item)
	}
}

func formatContactMessage(m entity.ContactMessage) string {
	var b strings.Builder
	status := "🆕"
	if m.Read {
		status = "✅"
	}
	fmt.Fprintf(&b, "%s %s <%s>\n", status, m.Name, m.Email)
	if m.Phone != "" {
		fmt.Fprintf(&b, "📞 %s\n", m.Phone)
	}
	if !m.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "🕒 %s\n", m.CreatedAt.Local().Format("02/01/2006 15:04"))
	}
	fmt.Fprintf(&b, "Sujet : %s\n\n%s\n\nid: %s", m.Subject, m.Message, m.ID)
	return b.String()
}

func importSummary(created, total int, filename string) string {
	return fmt.Sprintf("✅ Import de %s terminé.\n\nProduits créés : %d\nProduits au catalogue : %d", filename, created, total)
}

// productFormTemplate is sent to the admin before a create or edit.
func productFormTemplate(in entity.ProductInput) string {
	return strings.Join([]string{
		"nom: " + in.Name,
		"prix: " + cast.ToString(in.Price),
		"categorie: " + in.Category,
		"description: " + in.Description,
		"qr: " + in.QRCode.String(),
		"images: " + strings.Join(in.Images, "; "),
		"ingredients: " + strings.Join(in.Ingredients, "; "),
		"bienfaits: " + strings.Join(in.Benefits, "; "),
		"utilisation: " + in.Usage,
	}, "\n")
}

// parseProductForm applies "champ: valeur" lines on top of base. Unknown
// fields are reported; lines without a colon are ignored.
func parseProductForm(text string, base entity.ProductInput) (entity.ProductInput, error) {
	in := base
	var unknown []string

	for _, line := range strings.Split(text, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "nom", "name":
			in.Name = value
		case "prix", "price":
			price, err := cast.ToFloat64E(strings.ReplaceAll(value, ",", "."))
			if err != nil || price < 0 {
				return base, errors.Errorf("prix invalide: %q", value)
			}
			in.Price = price
		case "categorie", "catégorie", "category":
			in.Category = value
		case "description":
			in.Description = value
		case "qr", "qrcode":
			in.QRCode = entity.QRCode(value)
		case "images":
			in.Images = splitList(value)
		case "ingredients", "ingrédients":
			in.Ingredients = splitList(value)
		case "bienfaits", "benefits":
			in.Benefits = splitList(value)
		case "utilisation", "usage":
			in.Usage = value
		default:
			unknown = append(unknown, key)
		}
	}

	if len(unknown) > 0 {
		return base, errors.Errorf("champs inconnus: %s", strings.Join(unknown, ", "))
	}
	if strings.TrimSpace(in.Name) == "" {
		return base, errors.New("le nom est obligatoire")
	}
	return in.Clean(), nil
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	return strings.Split(value, ";")
}
