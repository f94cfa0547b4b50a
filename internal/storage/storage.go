package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"reflect"
	"time"

	"polo_storefront/internal/database"
)

// Key identifie un enregistrement persisté (une clé = un enregistrement logique)
type Key string

const (
	KeyCart          Key = "Cart"
	KeyFavorites     Key = "Favorites"
	KeyCurrentUser   Key = "CurrentUser"
	KeyUsers         Key = "Users"
	KeyOrders        Key = "Orders"
	KeySearchHistory Key = "SearchHistory"
	KeyDarkMode      Key = "DarkMode"
	KeyViewMode      Key = "ViewMode"
	KeyBigText       Key = "BigText"
)

const defaultTimeout = 3 * time.Second

// ErrCorrupt signale une valeur présente mais illisible ; les autres erreurs
// de Read viennent du backend.
var ErrCorrupt = errors.New("valeur corrompue")

// Adapter sérialise en JSON au-dessus d'un KeyValueStore.
// Chaque écriture est synchrone : au retour, la valeur est durable.
type Adapter struct {
	kv      database.KeyValueStore
	prefix  string
	timeout time.Duration
}

func New(kv database.KeyValueStore, prefix string) *Adapter {
	return &Adapter{kv: kv, prefix: prefix, timeout: defaultTimeout}
}

func (a *Adapter) name(key Key) string {
	return a.prefix + string(key)
}

// Read décode la valeur dans dst (un pointeur). found=false si la clé est absente.
// Le décodage passe par une valeur temporaire : en cas d'erreur, dst reste intact.
func (a *Adapter) Read(key Key, dst any) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	raw, found, err := a.kv.Get(ctx, a.name(key))
	if err != nil {
		return false, fmt.Errorf("lecture %s: %w", a.name(key), err)
	}
	if !found {
		return false, nil
	}

	target := reflect.ValueOf(dst)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		return true, fmt.Errorf("décodage %s: destination %T invalide", a.name(key), dst)
	}
	tmp := reflect.New(target.Elem().Type())
	if err := json.Unmarshal([]byte(raw), tmp.Interface()); err != nil {
		return true, fmt.Errorf("%w: %s: %v", ErrCorrupt, a.name(key), err)
	}
	target.Elem().Set(tmp.Elem())
	return true, nil
}

// Fetch sert aux lectures suivies d'une réécriture : une valeur corrompue est
// journalisée et dst garde sa valeur par défaut, mais une erreur du backend
// est renvoyée pour que l'appelant n'écrase pas la liste persistée.
func (a *Adapter) Fetch(key Key, dst any) error {
	_, err := a.Read(key, dst)
	if errors.Is(err, ErrCorrupt) {
		log.Printf("⚠️ Valeur corrompue pour %s, valeur par défaut utilisée: %v", a.name(key), err)
		return nil
	}
	return err
}

// Load est la version tolérante de Read : toute erreur est journalisée et
// l'appelant garde sa valeur par défaut.
func (a *Adapter) Load(key Key, dst any) bool {
	found, err := a.Read(key, dst)
	if err != nil {
		log.Printf("⚠️ Lecture de %s impossible, valeur par défaut utilisée: %v", a.name(key), err)
		return false
	}
	return found
}

func (a *Adapter) Write(key Key, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encodage %s: %w", a.name(key), err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	if err := a.kv.Set(ctx, a.name(key), string(data)); err != nil {
		return fmt.Errorf("écriture %s: %w", a.name(key), err)
	}
	return nil
}

func (a *Adapter) Remove(key Key) error {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	if err := a.kv.Del(ctx, a.name(key)); err != nil {
		return fmt.Errorf("suppression %s: %w", a.name(key), err)
	}
	return nil
}

// Save écrit et journalise l'échec sans le propager (dernier écrit gagne)
func (a *Adapter) Save(key Key, value any) {
	if err := a.Write(key, value); err != nil {
		log.Printf("❌ Erreur sauvegarde %s: %v", a.name(key), err)
	}
}

// Delete supprime et journalise l'échec sans le propager
func (a *Adapter) Delete(key Key) {
	if err := a.Remove(key); err != nil {
		log.Printf("❌ Erreur suppression %s: %v", a.name(key), err)
	}
}
