package service

import (
	"github.com/mmynk/idine/internal/models"
	"github.com/mmynk/idine/internal/order"
	"github.com/mmynk/idine/pkg/api"
)

// guestDisplayName is shown when the diner has not set a name.
const guestDisplayName = "Guest"

func toAPIItem(item models.MenuItem) api.MenuItem {
	out := api.MenuItem{
		ID:             item.ID,
		Name:           item.Name,
		EnglishName:    item.EnglishName,
		PhotoCredit:    item.PhotoCredit,
		Price:          item.Price,
		Restrictions:   append([]string{}, item.Restrictions...),
		Description:    item.Description,
		Calories:       item.Calories,
		AttributeTitle: item.AttributeTitle,
		MainImage:      item.MainImage(),
		ThumbnailImage: item.ThumbnailImage(),
	}
	for _, ing := range item.Ingredients {
		out.Ingredients = append(out.Ingredients, api.Ingredient{Name: ing.Name, Icon: ing.Icon})
	}
	return out
}

func toAPIItems(items []models.MenuItem) []api.MenuItem {
	out := make([]api.MenuItem, len(items))
	for i, item := range items {
		out[i] = toAPIItem(item)
	}
	return out
}

func toAPISections(sections []models.MenuSection) []api.MenuSection {
	out := make([]api.MenuSection, len(sections))
	for i, section := range sections {
		out[i] = api.MenuSection{
			ID:    section.ID,
			Name:  section.Name,
			Items: toAPIItems(section.Items),
		}
	}
	return out
}

func toAPIRecord(rec models.OrderRecord) api.OrderRecord {
	return api.OrderRecord{
		ID:         rec.ID,
		CreatedAt:  rec.CreatedAt,
		Items:      toAPIItems(rec.Items),
		TotalPrice: rec.TotalPrice,
	}
}

func toAPICart(store *order.Store) api.Cart {
	snap := store.Snapshot()
	return api.Cart{
		Items: toAPIItems(snap.Items),
		Count: len(snap.Items),
		Total: snap.Total,
		Phase: snap.Phase.String(),
	}
}

func toAPIProfile(store *order.Store) api.Profile {
	name := store.UserName()
	display := name
	if display == "" {
		display = guestDisplayName
	}
	return api.Profile{
		UserName:    name,
		DisplayName: display,
		GuestCount:  store.GuestCount(),
		LoggedIn:    store.LoggedIn(),
	}
}

func toAPIUser(user *models.User) api.User {
	return api.User{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		CreatedAt:   user.CreatedAt,
	}
}
