package mongo

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/recipehub/recipe-api/internal/core/domain"
	"github.com/recipehub/recipe-api/internal/core/ports"
)

const collectionRecipes = "recipes"

type RecipeRepository struct {
	col *mongo.Collection
}

func NewRecipeRepository(db *mongo.Database) *RecipeRepository {
	return &RecipeRepository{col: db.Collection(collectionRecipes)}
}

type mongoRecipe struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Type         string             `bson:"type"`
	Ingredients  string             `bson:"ingredients"`
	Instructions string             `bson:"instructions"`
	Author       primitive.ObjectID `bson:"author"`
	AuthorName   string             `bson:"authorName"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func (m *mongoRecipe) toDomain() *domain.Recipe {
	return &domain.Recipe{
		ID:           m.ID.Hex(),
		Title:        m.Title,
		Type:         domain.RecipeType(m.Type),
		Ingredients:  m.Ingredients,
		Instructions: m.Instructions,
		AuthorID:     m.Author.Hex(),
		AuthorName:   m.AuthorName,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}

// Create inserts a new recipe document.
func (r *RecipeRepository) Create(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {
	author, err := parseObjectID(recipe.AuthorID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoRecipe{
		ID:           primitive.NewObjectID(),
		Title:        recipe.Title,
		Type:         string(recipe.Type),
		Ingredients:  recipe.Ingredients,
		Instructions: recipe.Instructions,
		Author:       author,
		AuthorName:   recipe.AuthorName,
		CreatedAt:    recipe.CreatedAt,
		UpdatedAt:    recipe.UpdatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert recipe: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *RecipeRepository) FindByID(ctx context.Context, id string) (*domain.Recipe, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoRecipe
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("find recipe: %w", err)
	}
	return doc.toDomain(), nil
}

// listFilter builds the query for List. Free-text values are regex-quoted
// so user input is always matched literally.
func listFilter(f ports.ListRecipesFilter) bson.M {
	filter := bson.M{}
	if f.Type != "" {
		filter["type"] = string(f.Type)
	}
	if f.Author != "" {
		filter["authorName"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Author), Options: "i"}
	}
	if f.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = []bson.M{
			{"title": pattern},
			{"ingredients": pattern},
			{"authorName": pattern},
		}
	}
	return filter
}

// List returns one page of recipes, newest first, plus the total match count.
func (r *RecipeRepository) List(ctx context.Context, f ports.ListRecipesFilter) ([]*domain.Recipe, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := listFilter(f)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count recipes: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	if f.Limit > 0 {
		skip, ok := pageSkip(f.Page, f.Limit)
		if !ok {
			return []*domain.Recipe{}, total, nil
		}
		opts.SetSkip(skip).SetLimit(int64(f.Limit))
	}

	items, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// pageSkip returns the number of documents before page. ok is false when
// the offset does not fit in an int64.
func pageSkip(page, limit int) (skip int64, ok bool) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		return 0, true
	}
	if int64(page-1) > math.MaxInt64/int64(limit) {
		return 0, false
	}
	return int64(page-1) * int64(limit), true
}

func (r *RecipeRepository) FindByAuthor(ctx context.Context, authorID string) ([]*domain.Recipe, error) {
	author, err := parseObjectID(authorID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.find(ctx, bson.M{"author": author}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

// Update applies patch when the recipe is still owned by authorID. A recipe
// that vanished or changed hands meanwhile yields ErrRecipeNotFound.
func (r *RecipeRepository) Update(ctx context.Context, id, authorID string, patch ports.RecipePatch, updatedAt time.Time) (*domain.Recipe, error) {
	filter, err := ownedFilter(id, authorID)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updatedAt": updatedAt}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Type != nil {
		set["type"] = string(*patch.Type)
	}
	if patch.Ingredients != nil {
		set["ingredients"] = *patch.Ingredients
	}
	if patch.Instructions != nil {
		set["instructions"] = *patch.Instructions
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoRecipe
	err = r.col.FindOneAndUpdate(ctx, filter, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *RecipeRepository) Delete(ctx context.Context, id, authorID string) error {
	filter, err := ownedFilter(id, authorID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRecipeNotFound
	}
	return nil
}

func (r *RecipeRepository) Count(ctx context.Context, recipeType domain.RecipeType) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if recipeType != "" {
		filter["type"] = string(recipeType)
	}
	n, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count recipes: %w", err)
	}
	return n, nil
}

// EnsureIndexes creates the indexes backing author lookups, type filters
// and newest-first listing.
func (r *RecipeRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, recipeIndexes())
	return err
}

// Title and ingredient search is a case-insensitive $regex, which a text
// index cannot serve, so none is created.
func recipeIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "author", Value: 1}}},
		{Keys: bson.D{{Key: "type", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}
}

func ownedFilter(id, authorID string) (bson.M, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	author, err := parseObjectID(authorID)
	if err != nil {
		return nil, err
	}
	return bson.M{"_id": oid, "author": author}, nil
}

func (r *RecipeRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Recipe, error) {
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find recipes: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoRecipe
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode recipes: %w", err)
	}

	out := make([]*domain.Recipe, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}
