package repository

import "mars_shop/internal/apperr"

func productNotFound() error  { return apperr.NotFound("Produit introuvable") }
func categoryNotFound() error { return apperr.NotFound("Catégorie introuvable") }
func orderNotFound() error    { return apperr.NotFound("Commande introuvable") }
func userNotFound() error     { return apperr.NotFound("Utilisateur introuvable") }
func emailTaken() error       { return apperr.Conflict("Cet email est déjà utilisé") }
func alreadyExists(what string) error {
	return apperr.Conflict(what + " existe déjà")
}
